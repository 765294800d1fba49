package migrations

import (
	"schemer/internal/migration"
	"schemer/internal/schema"
)

func init() {
	migration.Register(migration.Definition{
		Name: "2_CreateAuthor",
		New:  func() migration.Migration { return createAuthor{} },
	})
}

type createAuthor struct{}

func (createAuthor) Up(b *schema.Builder) {
	b.CreateTable("Author").
		Column("Id").Int32().Identity().NotNull().
		Column("FirstName").Text().MaxLength(100).NotNull().
		Column("LastName").Text().MaxLength(100).NotNull().
		Column("BornOn").Date().Null()

	b.CreatePrimaryKey("PK_Author").OnTable("Author").Column("Id")

	b.AlterTable("Book").AddColumn("AuthorId").Int32().Null()

	b.CreateForeignKey("FK_Book_Author").
		FromTable("Book").Column("AuthorId").
		ToTable("Author").Column("Id").
		OnDelete(schema.SetNull)

	b.CreateIndex("IX_Book_AuthorId").OnTable("Book").Column("AuthorId").Ascending()
}

func (createAuthor) Down(b *schema.Builder) {
	b.DropConstraint("FK_Book_Author").OnTable("Book")
	b.DropIndex("IX_Book_AuthorId").OnTable("Book")
	b.AlterTable("Book").DropColumn("AuthorId")
	b.DropTable("Author")
}
