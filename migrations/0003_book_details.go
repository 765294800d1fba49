package migrations

import (
	"schemer/internal/migration"
	"schemer/internal/schema"
)

func init() {
	migration.Register(migration.Definition{
		Name: "3_AddBookDetails",
		New:  func() migration.Migration { return bookDetails{} },
	})
}

type bookDetails struct{}

func (bookDetails) Up(b *schema.Builder) {
	b.AlterTable("Book").
		AddColumn("Price").Decimal().Precision(10).Scale(2).Null().
		AddColumn("Isbn").Text().FixedLength(13).Null().
		AddColumn("PublishedAt").DateTimeOffset().Null().
		AlterColumn("Name").Text().MaxLength(400).NotNull()

	b.CreateIndex("UX_Book_Isbn").OnTable("Book").Unique().
		Column("Isbn").Ascending().
		Where("[Isbn] IS NOT NULL")

	b.RenameColumn("Name").OnTable("Book").To("Title")
}

func (bookDetails) Down(b *schema.Builder) {
	b.RenameColumn("Title").OnTable("Book").To("Name")
	b.DropIndex("UX_Book_Isbn").OnTable("Book")
	b.AlterTable("Book").
		AlterColumn("Name").Text().NotNull().
		DropColumn("PublishedAt").
		DropColumn("Isbn").
		DropColumn("Price")
}
