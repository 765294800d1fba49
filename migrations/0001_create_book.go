package migrations

import (
	"schemer/internal/migration"
	"schemer/internal/schema"
)

func init() {
	migration.Register(migration.Definition{
		Name: "1_CreateBook",
		New:  func() migration.Migration { return createBook{} },
	})
}

type createBook struct{}

func (createBook) Up(b *schema.Builder) {
	b.CreateTable("Book").
		Column("Id").Int32().Identity().NotNull().
		Column("Name").Text().NotNull()

	b.CreatePrimaryKey("PK_Book").OnTable("Book").Column("Id")
}

func (createBook) Down(b *schema.Builder) {
	b.DropTable("Book")
}
