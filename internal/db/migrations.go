package db

// migration is one additive schema change. Only ALTER TABLE ... ADD COLUMN
// statements are allowed here; destructive changes (drop, rename) are not
// supported.
type migration struct {
	Name string
	SQL  string
}

// additiveMigrations lists the columns introduced after the base schema, in
// the order they shipped. Each runs on every start and relies on EnsureSchema
// ignoring the duplicate-column error once applied.
var additiveMigrations = []migration{
	{
		Name: "add_hydration_estimate_to_ai_analysis",
		SQL:  "ALTER TABLE ai_analysis ADD COLUMN hydration_estimate TEXT",
	},
}
