package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/dirdocs/internal/generator"
)

func RunStatus(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := generator.Inspect(path, cfg.Generate.Ignore)
	if err != nil {
		return err
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(st)
	}

	if !st.Exists {
		fmt.Printf("%s is not documented (%d files); run 'dirdocs generate %s'\n", st.Root, st.FilesTotal, path)
		return nil
	}

	fmt.Printf("cache:      %s\n", st.CachePath)
	fmt.Printf("updated:    %s\n", st.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("files:      %d\n", st.FilesTotal)
	fmt.Printf("documented: %d\n", st.Documented)
	fmt.Printf("stale:      %d\n", st.Stale)
	if st.Removed > 0 {
		fmt.Printf("removed:    %d (cached entries for deleted files)\n", st.Removed)
	}
	return nil
}
