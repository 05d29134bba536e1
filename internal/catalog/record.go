package catalog

import (
	"encoding/binary"

	"github.com/0x09/go-hfsplus/internal/endian"
	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
)

// DecodeRecord decodes a Catalog leaf record's value by dispatching on
// its leading int16 record type tag.
func DecodeRecord(raw []byte) (interfaces.CatalogRecord, error) {
	const op = "catalog.DecodeRecord"
	if len(raw) < 2 {
		return interfaces.CatalogRecord{}, types.NewError(types.KindCorrupt, op, nil)
	}
	recType := types.CatalogRecordType(int16(binary.BigEndian.Uint16(raw[0:2])))
	switch recType {
	case types.RecTypeFolder:
		f, err := decodeFolderRecord(raw)
		if err != nil {
			return interfaces.CatalogRecord{}, err
		}
		return interfaces.CatalogRecord{Type: recType, Folder: f}, nil
	case types.RecTypeFile:
		f, err := decodeFileRecord(raw)
		if err != nil {
			return interfaces.CatalogRecord{}, err
		}
		return interfaces.CatalogRecord{Type: recType, File: f}, nil
	case types.RecTypeFolderThread, types.RecTypeFileThread:
		th, err := decodeThreadRecord(raw)
		if err != nil {
			return interfaces.CatalogRecord{}, err
		}
		return interfaces.CatalogRecord{Type: recType, Thread: th}, nil
	default:
		return interfaces.CatalogRecord{}, types.NewError(types.KindCorrupt, op, nil)
	}
}

func decodePermissions(c *endian.Cursor) (types.PermissionsBlock, error) {
	var p types.PermissionsBlock
	var err error
	if p.OwnerID, err = c.U32(); err != nil {
		return p, err
	}
	if p.GroupID, err = c.U32(); err != nil {
		return p, err
	}
	if p.AdminFlags, err = c.U8(); err != nil {
		return p, err
	}
	if p.OwnerFlags, err = c.U8(); err != nil {
		return p, err
	}
	if p.FileMode, err = c.U16(); err != nil {
		return p, err
	}
	if p.Special, err = c.U32(); err != nil {
		return p, err
	}
	return p, nil
}

func decodePoint(c *endian.Cursor) (types.Point, error) {
	var pt types.Point
	var err error
	if pt.V, err = c.U16(); err != nil {
		return pt, err
	}
	if pt.H, err = c.U16(); err != nil {
		return pt, err
	}
	return pt, nil
}

func decodeFolderFinderInfo(c *endian.Cursor) (types.FolderFinderInfo, error) {
	var fi types.FolderFinderInfo
	var err error
	if fi.WindowBoundsTop, err = c.U16(); err != nil {
		return fi, err
	}
	if fi.WindowBoundsLeft, err = c.U16(); err != nil {
		return fi, err
	}
	if fi.WindowBoundsBottom, err = c.U16(); err != nil {
		return fi, err
	}
	if fi.WindowBoundsRight, err = c.U16(); err != nil {
		return fi, err
	}
	if fi.FinderFlags, err = c.U16(); err != nil {
		return fi, err
	}
	if fi.Location, err = decodePoint(c); err != nil {
		return fi, err
	}
	if fi.Reserved, err = c.U16(); err != nil {
		return fi, err
	}
	if fi.ScrollPosition, err = decodePoint(c); err != nil {
		return fi, err
	}
	if fi.ExtReserved, err = c.U32(); err != nil {
		return fi, err
	}
	if fi.ExtendedFinderFlags, err = c.U16(); err != nil {
		return fi, err
	}
	if fi.Reserved2, err = c.U16(); err != nil {
		return fi, err
	}
	var cnid uint32
	if cnid, err = c.U32(); err != nil {
		return fi, err
	}
	fi.PutAwayFolderCNID = types.CNID(cnid)
	return fi, nil
}

func decodeFileFinderInfo(c *endian.Cursor) (types.FileFinderInfo, error) {
	var fi types.FileFinderInfo
	var err error
	if fi.FileType, err = c.U32(); err != nil {
		return fi, err
	}
	if fi.FileCreator, err = c.U32(); err != nil {
		return fi, err
	}
	if fi.FinderFlags, err = c.U16(); err != nil {
		return fi, err
	}
	if fi.Location, err = decodePoint(c); err != nil {
		return fi, err
	}
	if fi.Reserved, err = c.U16(); err != nil {
		return fi, err
	}
	for i := range fi.ExtReserved {
		if fi.ExtReserved[i], err = c.U16(); err != nil {
			return fi, err
		}
	}
	if fi.ExtendedFinderFlags, err = c.U16(); err != nil {
		return fi, err
	}
	if fi.Reserved2, err = c.U16(); err != nil {
		return fi, err
	}
	var cnid uint32
	if cnid, err = c.U32(); err != nil {
		return fi, err
	}
	fi.PutAwayFolderCNID = types.CNID(cnid)
	return fi, nil
}

func decodeFolderRecord(raw []byte) (*types.FolderRecord, error) {
	const op = "catalog.decodeFolderRecord"
	c := endian.NewCursor(raw, op)
	if err := c.Skip(2); err != nil { // record type already dispatched on
		return nil, err
	}
	f := &types.FolderRecord{}
	var err error
	if f.Flags, err = c.U16(); err != nil {
		return nil, err
	}
	if f.Valence, err = c.U32(); err != nil {
		return nil, err
	}
	var cnid uint32
	if cnid, err = c.U32(); err != nil {
		return nil, err
	}
	f.CNID = types.CNID(cnid)
	if f.CreateDate, err = c.U32(); err != nil {
		return nil, err
	}
	if f.ContentModDate, err = c.U32(); err != nil {
		return nil, err
	}
	if f.AttrModDate, err = c.U32(); err != nil {
		return nil, err
	}
	if f.AccessDate, err = c.U32(); err != nil {
		return nil, err
	}
	if f.BackupDate, err = c.U32(); err != nil {
		return nil, err
	}
	if f.Permissions, err = decodePermissions(c); err != nil {
		return nil, err
	}
	if f.FinderInfo, err = decodeFolderFinderInfo(c); err != nil {
		return nil, err
	}
	if f.TextEncoding, err = c.U32(); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeFileRecord(raw []byte) (*types.FileRecord, error) {
	const op = "catalog.decodeFileRecord"
	c := endian.NewCursor(raw, op)
	if err := c.Skip(2); err != nil {
		return nil, err
	}
	f := &types.FileRecord{}
	var err error
	if f.Flags, err = c.U16(); err != nil {
		return nil, err
	}
	if err := c.Skip(4); err != nil { // reserved1
		return nil, err
	}
	var cnid uint32
	if cnid, err = c.U32(); err != nil {
		return nil, err
	}
	f.CNID = types.CNID(cnid)
	if f.CreateDate, err = c.U32(); err != nil {
		return nil, err
	}
	if f.ContentModDate, err = c.U32(); err != nil {
		return nil, err
	}
	if f.AttrModDate, err = c.U32(); err != nil {
		return nil, err
	}
	if f.AccessDate, err = c.U32(); err != nil {
		return nil, err
	}
	if f.BackupDate, err = c.U32(); err != nil {
		return nil, err
	}
	if f.Permissions, err = decodePermissions(c); err != nil {
		return nil, err
	}
	if f.FinderInfo, err = decodeFileFinderInfo(c); err != nil {
		return nil, err
	}
	if f.TextEncoding, err = c.U32(); err != nil {
		return nil, err
	}
	if err := c.Skip(4); err != nil { // reserved2
		return nil, err
	}
	if f.DataFork, err = c.ForkData(); err != nil {
		return nil, err
	}
	if f.RsrcFork, err = c.ForkData(); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeThreadRecord(raw []byte) (*types.ThreadRecord, error) {
	const op = "catalog.decodeThreadRecord"
	c := endian.NewCursor(raw, op)
	if err := c.Skip(2); err != nil { // record type
		return nil, err
	}
	if err := c.Skip(4); err != nil { // reserved
		return nil, err
	}
	var parent uint32
	var err error
	if parent, err = c.U32(); err != nil {
		return nil, err
	}
	nameLen, err := c.U16()
	if err != nil {
		return nil, err
	}
	name, err := c.U16Array(int(nameLen))
	if err != nil {
		return nil, err
	}
	return &types.ThreadRecord{ParentCNID: types.CNID(parent), Name: name}, nil
}
