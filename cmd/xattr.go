package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var getxattrCmd = &cobra.Command{
	Use:   "getxattr <device> <cnid|path> <name>",
	Short: "Read a synthesized extended attribute",
	Long: `A CLI-only extension beyond the original inspection tool: reads
one of the attributes internal/xattr synthesizes (com.apple.FinderInfo,
com.apple.ResourceFork, or a timestamp metadata key) and writes its raw
bytes to stdout.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetxattr(args[0], args[1], args[2])
	},
}

var listxattrCmd = &cobra.Command{
	Use:   "listxattr <device> <cnid|path>",
	Short: "List the synthesized extended attribute names",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListxattr(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(getxattrCmd, listxattrCmd)
}

func runGetxattr(devicePath, targetArg, name string) error {
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

	buf, err := svc.GetXattr(path, name)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(buf)
	return err
}

func runListxattr(devicePath, targetArg string) error {
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

	names, err := svc.ListXattr(path)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
