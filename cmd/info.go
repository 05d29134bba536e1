package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <device>",
	Short: "Dump the volume header",
	Long: `Prints the fields of the HFS+ Volume Header: signature, block
accounting, journaling and dirty-unmount flags, and the volume's
creation and modification dates, grounded on hfsdump.c's
dump_volume_header.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(args[0])
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(devicePath string) error {
	svc, err := openService(devicePath)
	if err != nil {
		return err
	}
	defer svc.CloseVolume()

	info := svc.Info()
	printField("Name", info.Name)
	printField("Signature", fmt.Sprintf("0x%04X", info.Signature))
	printField("Block Size", info.BlockSize)
	printField("Total Blocks", info.TotalBlocks)
	printField("Free Blocks", info.FreeBlocks)
	printField("Journaled", info.Journaled)
	printField("Dirty", info.Dirty)
	printField("Case Sensitive", info.CaseSensitive)
	printField("Created", time.Unix(info.CreateDate, 0).UTC())
	printField("Modified", time.Unix(info.ModifyDate, 0).UTC())
	return nil
}

func printField(name string, value interface{}) {
	fmt.Printf("%s: %v\n", fieldColor(name), value)
}
