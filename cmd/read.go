package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/0x09/go-hfsplus/pkg/app"
	"github.com/0x09/go-hfsplus/pkg/hfsplus"
)

const readChunkSize = 64 * 1024

var readCmd = &cobra.Command{
	Use:   "read <device> <cnid|path>",
	Short: "Read a file's bytes or list a directory",
	Long: `If the target names a file, its data fork is streamed to stdout
(append /rsrc to the path to read the resource fork instead). If the
target names a folder, its direct children are printed one name per
line. Grounded on hfsdump.c's "read" branch.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRead(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(devicePath, targetArg string) error {
	target, err := parseTarget(targetArg)
	if err != nil {
		return err
	}

	svc, err := openService(devicePath)
	if err != nil {
		return err
	}
	defer svc.CloseVolume()

	path, err := resolvePath(svc, target)
	if err != nil {
		return err
	}

	rec, err := svc.Lookup(path)
	if err != nil {
		return err
	}

	if rec.IsFolder() {
		entries, err := svc.Readdir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Println(e.Name)
		}
		return nil
	}

	attrs, err := svc.Stat(path)
	if err != nil {
		return err
	}
	return streamFile(svc, path, attrs.Size)
}

// streamFile copies the file at path to stdout in chunks, reporting
// progress through an app.Context when --verbose is set: large reads
// over a slow device are the one place in this read-only CLI where a
// progress callback earns its keep.
func streamFile(svc *hfsplus.Service, path string, total int64) error {
	ctx := app.NewContext()
	ctx.Verbose = GetVerbose()
	ctx.Quiet = GetQuiet()
	started := time.Now()
	if ctx.Verbose {
		ctx.SetProgress(func(message string, percent int) {
			log.WithField("percent", percent).Debug(message)
		})
	}

	buf := make([]byte, readChunkSize)
	var offset int64
	update := app.ProgressUpdate{Total: total, StartedAt: started}
	for {
		n, err := svc.Read(path, buf, offset)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		if _, werr := os.Stdout.Write(buf[:n]); werr != nil {
			return werr
		}
		offset += int64(n)

		update.Completed = offset
		update.ElapsedTime = time.Since(started)
		ctx.Progress(fmt.Sprintf("read %s", path), update.Percent())
	}
}
