package resolver

import (
	"strings"

	"github.com/0x09/go-hfsplus/internal/hfsunicode"
	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
)

// Result is the terminal record a path resolves to, plus which fork a
// trailing "/rsrc" suffix selected.
type Result struct {
	Record interfaces.CatalogRecord
	Key    types.CatalogKey
	Fork   types.ForkKind
}

// Resolver walks slash-separated paths against a Catalog, caching the
// terminal record of each resolved path.
type Resolver struct {
	catalog interfaces.Catalog
	cache   *recordCache
}

func New(catalog interfaces.Catalog) *Resolver {
	return &Resolver{catalog: catalog, cache: newRecordCache()}
}

// Resolve walks path (an absolute, slash-separated name relative to the
// volume root, e.g. "/Users/foo/bar" or "/Users/foo/bar/rsrc") down to
// its terminal Catalog record.
//
// A directory hard link encountered before the final path element is
// not traversable: Time Machine-style directory hard links only appear
// as leaf entries in practice, and resolving one mid-path would need a
// second private-directory indirection this driver does not support.
// A file hard link at the terminal element is resolved transparently to
// its target record rather than surfaced as a distinct outcome, since
// nothing downstream needs to special-case it.
func (r *Resolver) Resolve(path string) (Result, error) {
	const op = "resolver.Resolve"

	if rec, key, ok := r.cache.lookup(path); ok {
		return Result{Record: rec, Key: key, Fork: types.DataFork}, nil
	}

	record, key, err := r.catalog.FindByCNID(types.RootFolderCNID)
	if err != nil {
		return Result{}, err
	}

	trimmed := strings.Trim(path, "/")
	var elements []string
	if trimmed != "" {
		elements = strings.Split(trimmed, "/")
	}

	fork := types.DataFork
	consumed := 0
	for consumed < len(elements) && record.IsFolder() {
		elem := elements[consumed]
		if elem == "" {
			consumed++
			continue
		}
		units, err := hfsunicode.EncodeName(elem)
		if err != nil {
			return Result{}, types.NewError(types.KindInvalidName, op, err)
		}

		parentCNID := record.CNID()
		rec, err := r.catalog.FindByKey(parentCNID, units)
		if err != nil {
			return Result{}, err
		}
		record = rec
		key = types.CatalogKey{ParentCNID: parentCNID, Name: units}
		consumed++

		if record.IsFile() && record.File.IsDirHardLink() && consumed < len(elements) {
			return Result{}, types.NewError(types.KindNotFound, op, nil)
		}
	}

	if consumed < len(elements) {
		remaining := elements[consumed:]
		if !record.IsFile() || len(remaining) != 1 || remaining[0] != "rsrc" {
			return Result{}, types.NewError(types.KindNotADirectory, op, nil)
		}
		fork = types.ResourceFork
	}

	if record.IsFile() && record.File.IsFileHardLink() {
		target, err := r.catalog.ResolveFileHardLink(record.File.Permissions.Special)
		if err != nil {
			return Result{}, err
		}
		record = target
	}

	result := Result{Record: record, Key: key, Fork: fork}
	if fork != types.ResourceFork {
		r.cache.add(path, record, key)
	}
	return result, nil
}
