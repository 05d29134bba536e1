package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat <device> <cnid|path>",
	Short: "Dump a Catalog record's attributes",
	Long: `Resolves a path or CNID to its Catalog record and prints the
POSIX-shaped attributes hfs_stat synthesizes from it: mode, ownership,
link count, size, block count, and timestamps. Grounded on hfsdump.c's
dump_record.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStat(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(statCmd)
}

func runStat(devicePath, targetArg string) error {
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

	attrs, err := svc.Stat(path)
	if err != nil {
		return err
	}

	printField("CNID", uint32(attrs.CNID))
	printField("Mode", fmt.Sprintf("%#o", attrs.Mode))
	printField("UID", attrs.UID)
	printField("GID", attrs.GID)
	printField("Links", attrs.NLink)
	if attrs.RDev != 0 {
		printField("RDev", attrs.RDev)
	}
	printField("Size", attrs.Size)
	printField("Blocks", attrs.Blocks)
	printField("Block Size", attrs.BlockSize)
	printField("Accessed", time.Unix(attrs.ATime, 0).UTC())
	printField("Modified", time.Unix(attrs.MTime, 0).UTC())
	printField("Attr Changed", time.Unix(attrs.CTime, 0).UTC())
	printField("Created", time.Unix(attrs.BirthTime, 0).UTC())
	printField("BSD Flags", fmt.Sprintf("%#x", attrs.BSDFlags))
	return nil
}
