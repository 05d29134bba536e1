package cmd

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/0x09/go-hfsplus/internal/types"
	"github.com/0x09/go-hfsplus/pkg/app"
	"github.com/0x09/go-hfsplus/pkg/hfsplus"
)

// fieldColor highlights a record's field names in stat/info output,
// the same color.New(...).SprintFunc() convention the pack's other APFS
// CLI uses for its own field highlighting.
var fieldColor = color.New(color.FgCyan, color.Bold).SprintFunc()

// openService opens devicePath through the public mount-side API,
// shared by every command that takes a device argument.
func openService(devicePath string) (*hfsplus.Service, error) {
	return hfsplus.OpenVolume(devicePath)
}

// parseTarget interprets a command's record-target argument: a leading
// "/" names a path, otherwise the argument must parse as a decimal CNID
// (as printed by a prior stat/read invocation).
func parseTarget(arg string) (app.RecordTarget, error) {
	if strings.HasPrefix(arg, "/") {
		return app.RecordTarget{Path: arg}, nil
	}
	cnid, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return app.RecordTarget{}, app.NewError(app.ErrCodeInvalidInput,
			"target must be an absolute path or a decimal CNID", err)
	}
	return app.RecordTarget{CNID: uint32(cnid)}, nil
}

// resolvePath turns a RecordTarget into the path the Service's
// path-keyed methods expect, walking a bare CNID back to its path via
// the volume's parent-thread chain first.
func resolvePath(svc *hfsplus.Service, target app.RecordTarget) (string, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if target.Path != "" {
		return target.Path, nil
	}
	return svc.PathOf(types.CNID(target.CNID))
}
