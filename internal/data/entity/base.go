package entity

// Named is the shape shared by the small reference entities.
type Named struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}
