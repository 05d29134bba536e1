package interfaces

// XattrBridge synthesizes the virtual extended attributes HFS+ records
// don't store as xattrs on disk but every macOS-aware consumer expects:
// FinderInfo, the resource fork's bytes, and a handful of timestamp
// metadata keys.
type XattrBridge interface {
	ListXattr(rec CatalogRecord) []string
	GetXattr(rec CatalogRecord, name string) ([]byte, error)
}
