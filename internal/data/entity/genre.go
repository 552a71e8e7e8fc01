package entity

type Genre Named

type MPA struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

type Director Named
