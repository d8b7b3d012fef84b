package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/dirdocs/internal/config"
)

func RunInit(cmd *cobra.Command, args []string) error {
	written, err := config.Init()
	if err != nil {
		return err
	}

	if len(written) == 0 {
		fmt.Println("config already installed; nothing to do")
		return nil
	}
	for _, path := range written {
		fmt.Printf("wrote %s\n", path)
	}
	fmt.Println("edit the config to pick a provider, or set OPENAI_API_KEY / OLLAMA_HOST")
	return nil
}
