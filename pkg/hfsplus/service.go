// Package hfsplus is the public mount-side API: it wires device, volume,
// resolver, and xattr bridge into the handful of operations a FUSE
// bridge or CLI actually needs — open a volume once, then look up,
// stat, read, and list by path.
package hfsplus

import (
	"sync"

	"github.com/0x09/go-hfsplus/internal/device"
	"github.com/0x09/go-hfsplus/internal/hfsunicode"
	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/resolver"
	"github.com/0x09/go-hfsplus/internal/types"
	"github.com/0x09/go-hfsplus/internal/volume"
	"github.com/0x09/go-hfsplus/internal/xattr"
	"github.com/0x09/go-hfsplus/pkg/container"
)

// Service is a single mounted HFS+ volume. Every method that takes a
// path resolves it through the same cached resolver, so repeated lookups
// of the same entry (the stat-then-open pattern every filesystem client
// does) only descend the Catalog B-tree once.
type Service struct {
	mu       sync.RWMutex
	dev      interfaces.BlockDevice
	vol      *volume.Volume
	resolver *resolver.Resolver
	xattr    *xattr.Bridge
}

// OpenVolume opens the image or device at path, locates the HFS+ Volume
// Header through pkg/container's offset detection, and opens the
// Catalog and Extents Overflow B-trees.
func OpenVolume(path string) (*Service, error) {
	cfg, err := device.LoadConfig()
	if err != nil {
		return nil, err
	}

	raw, err := device.Open(path)
	if err != nil {
		return nil, err
	}
	dev := device.NewCachingDevice(raw, cfg)

	offset, err := container.DetectOffset(dev, cfg.DefaultOffset)
	if err != nil {
		dev.Close()
		return nil, err
	}

	vol, err := volume.Open(dev, offset, raw.ID())
	if err != nil {
		dev.Close()
		return nil, err
	}

	return &Service{
		dev:      dev,
		vol:      vol,
		resolver: resolver.New(vol.Catalog),
		xattr:    xattr.New(vol.OpenFork),
	}, nil
}

// CloseVolume releases the underlying device.
func (s *Service) CloseVolume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vol.Close()
}

// Info returns the volume's header-derived metadata.
func (s *Service) Info() interfaces.VolumeInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vol.Info()
}

// Lookup resolves path to its terminal Catalog record.
func (s *Service) Lookup(path string) (interfaces.CatalogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, err := s.resolver.Resolve(path)
	if err != nil {
		return interfaces.CatalogRecord{}, err
	}
	return res.Record, nil
}

// Stat resolves path and returns its POSIX-shaped attributes, per
// hfs_stat in the original C driver: folder link count is valence+2,
// file size/blocks come from whichever fork the path's /rsrc suffix (if
// any) selected, and the BSD special union is interpreted as a raw
// device number only for character/block special files.
func (s *Service) Stat(path string) (interfaces.Attributes, error) {
	const op = "hfsplus.Stat"
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.resolver.Resolve(path)
	if err != nil {
		return interfaces.Attributes{}, err
	}
	return buildAttributes(res, s.vol.Info().BlockSize)
}

func buildAttributes(res resolver.Result, volBlockSize uint32) (interfaces.Attributes, error) {
	const op = "hfsplus.buildAttributes"
	switch {
	case res.Record.IsFolder():
		f := res.Record.Folder
		return interfaces.Attributes{
			Mode:      uint32(f.Permissions.FileMode),
			UID:       f.Permissions.OwnerID,
			GID:       f.Permissions.GroupID,
			NLink:     f.Valence + 2,
			Size:      int64(volBlockSize),
			BlockSize: volBlockSize,
			ATime:     types.HFSTimeToUnix(f.AccessDate),
			MTime:     types.HFSTimeToUnix(f.ContentModDate),
			CTime:     types.HFSTimeToUnix(f.AttrModDate),
			BirthTime: types.HFSTimeToUnix(f.CreateDate),
			BSDFlags:  uint32(f.Permissions.AdminFlags)<<16 | uint32(f.Permissions.OwnerFlags),
			CNID:      f.CNID,
		}, nil
	case res.Record.IsFile():
		f := res.Record.File
		fd := f.DataFork
		if res.Fork == types.ResourceFork {
			fd = f.RsrcFork
		}
		attrs := interfaces.Attributes{
			Mode:      uint32(f.Permissions.FileMode),
			UID:       f.Permissions.OwnerID,
			GID:       f.Permissions.GroupID,
			Size:      int64(fd.LogicalSize),
			Blocks:    int64(fd.TotalBlocks),
			BlockSize: volBlockSize,
			ATime:     types.HFSTimeToUnix(f.AccessDate),
			MTime:     types.HFSTimeToUnix(f.ContentModDate),
			CTime:     types.HFSTimeToUnix(f.AttrModDate),
			BirthTime: types.HFSTimeToUnix(f.CreateDate),
			BSDFlags:  uint32(f.Permissions.AdminFlags)<<16 | uint32(f.Permissions.OwnerFlags),
			CNID:      f.CNID,
		}
		if f.Permissions.FileMode&types.ModeTypeMask == types.ModeCharDev ||
			f.Permissions.FileMode&types.ModeTypeMask == types.ModeBlockDev {
			attrs.RDev = f.Permissions.Special
		} else {
			attrs.NLink = f.Permissions.Special
			if attrs.NLink == 0 {
				attrs.NLink = 1
			}
		}
		return attrs, nil
	default:
		return interfaces.Attributes{}, types.NewError(types.KindCorrupt, op, nil)
	}
}

// Read fills buf from the fork-logical offset of the file at path,
// selecting the resource fork when path carries a trailing "/rsrc".
func (s *Service) Read(path string, buf []byte, offset int64) (int, error) {
	const op = "hfsplus.Read"
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.resolver.Resolve(path)
	if err != nil {
		return 0, err
	}
	if !res.Record.IsFile() {
		return 0, types.NewError(types.KindNotADirectory, op, nil)
	}
	f := res.Record.File
	fd := f.DataFork
	if res.Fork == types.ResourceFork {
		fd = f.RsrcFork
	}
	fork, err := s.vol.OpenFork(f.CNID, res.Fork, fd)
	if err != nil {
		return 0, err
	}
	return fork.ReadAt(buf, offset)
}

// Readdir resolves path to a folder and lists its direct children.
func (s *Service) Readdir(path string) ([]interfaces.DirEntry, error) {
	const op = "hfsplus.Readdir"
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.resolver.Resolve(path)
	if err != nil {
		return nil, err
	}
	if !res.Record.IsFolder() {
		return nil, types.NewError(types.KindNotADirectory, op, nil)
	}
	return s.vol.Catalog.ListDirectory(res.Record.CNID())
}

// GetXattr returns the named synthesized extended attribute for path.
func (s *Service) GetXattr(path, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, err := s.resolver.Resolve(path)
	if err != nil {
		return nil, err
	}
	return s.xattr.GetXattr(res.Record, name)
}

// ListXattr lists the synthesized extended attribute names for path.
func (s *Service) ListXattr(path string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, err := s.resolver.Resolve(path)
	if err != nil {
		return nil, err
	}
	return s.xattr.ListXattr(res.Record), nil
}

// PathOf reassembles the UNIX-facing path for cnid by walking its chain
// of parent thread records up to the root folder, per hfs_get_path in
// original_source/lib/libhfsuser/hfsuser.c: each step resolves the
// current CNID's own (parent, name) via its thread record, the name is
// prepended, and the walk continues from the parent until it reaches
// the root folder, whose own name is the volume name and is not part of
// the path.
func (s *Service) PathOf(cnid types.CNID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cnid == types.RootFolderCNID {
		return "/", nil
	}

	var names []string
	cur := cnid
	for cur != types.RootFolderCNID {
		_, key, err := s.vol.Catalog.FindByCNID(cur)
		if err != nil {
			return "", err
		}
		name, err := hfsunicode.DecodeName(key.Name)
		if err != nil {
			return "", err
		}
		names = append(names, name)
		cur = key.ParentCNID
	}

	out := "/"
	for i := len(names) - 1; i >= 0; i-- {
		out += names[i]
		if i > 0 {
			out += "/"
		}
	}
	return out, nil
}
