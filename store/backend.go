package store

// Backend loads and saves the whole corpus. Load returns an error wrapping
// fs.ErrNotExist when there is nothing stored yet.
type Backend interface {
	Load() (*Store, error)
	Save(s *Store) error
}
