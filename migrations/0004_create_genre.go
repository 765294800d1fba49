package migrations

import (
	"schemer/internal/migration"
	"schemer/internal/schema"
)

func init() {
	migration.Register(migration.Definition{
		Name:   "4_CreateGenre",
		Schema: "catalog",
		New:    func() migration.Migration { return createGenre{} },
	})
}

type createGenre struct{}

func (createGenre) Up(b *schema.Builder) {
	b.SQL("IF SCHEMA_ID(N'catalog') IS NULL EXEC(N'CREATE SCHEMA [catalog]');")

	b.CreateTable("Genre").
		Column("Id").Guid().NotNull().
		Column("Code").Text().FixedLength(8).NotNull().
		Column("Label").Text().MaxLength(200).NotNull().
		Column("IsActive").Boolean().NotNull().
		Column("Popularity").Double().Null()

	b.CreatePrimaryKey("PK_Genre").OnTable("Genre").Column("Id")
	b.CreateIndex("UX_Genre_Code").OnTable("Genre").Unique().Column("Code").Ascending()

	b.CreateTable("BookGenre").
		Column("BookId").Int32().NotNull().
		Column("GenreId").Guid().NotNull().
		Column("AddedOn").DateTime().NotNull()

	b.CreatePrimaryKey("PK_BookGenre").OnTable("BookGenre").Column("BookId").Column("GenreId")

	b.CreateForeignKey("FK_BookGenre_Book").
		FromTable("BookGenre").Column("BookId").
		ToTable("Book").InSchema("dbo").Column("Id").
		OnDelete(schema.Cascade)

	b.CreateForeignKey("FK_BookGenre_Genre").
		FromTable("BookGenre").Column("GenreId").
		ToTable("Genre").Column("Id").
		OnDelete(schema.Restrict)
}

// Down keeps the catalog schema; dropping it could take unrelated objects
// with it.
func (createGenre) Down(b *schema.Builder) {
	b.DropTable("BookGenre")
	b.DropTable("Genre")
}
