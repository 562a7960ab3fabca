package domain

// Staff is a person who performs services
type Staff struct {
	ID       int64
	Name     string
	IsActive bool
}
