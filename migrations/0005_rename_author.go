package migrations

import (
	"schemer/internal/migration"
	"schemer/internal/schema"
)

func init() {
	migration.Register(migration.Definition{
		Name: "5_RenameAuthorToWriter",
		New:  func() migration.Migration { return renameAuthor{} },
	})
}

type renameAuthor struct{}

func (renameAuthor) Up(b *schema.Builder) {
	b.RenameIndex("IX_Book_AuthorId").OnTable("Book").To("IX_Book_WriterId")
	b.RenameTable("Author").To("Writer")
	b.AlterTable("Writer").
		AlterColumn("BornOn").DateTime().Null().
		AddColumn("Rank").Int16().Null().
		AddColumn("Royalties").Int64().Null()
}

func (renameAuthor) Down(b *schema.Builder) {
	b.AlterTable("Writer").
		DropColumn("Royalties").
		DropColumn("Rank").
		AlterColumn("BornOn").Date().Null()
	b.RenameTable("Writer").To("Author")
	b.RenameIndex("IX_Book_WriterId").OnTable("Book").To("IX_Book_AuthorId")
}
