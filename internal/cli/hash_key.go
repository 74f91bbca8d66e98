package cli

import (
	"fmt"

	"shopReco/pkg/utils"

	"github.com/spf13/cobra"
)

// NewHashKeyCmd creates the 'hash-key' command for provisioning the
// operator API key.
func NewHashKeyCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:     "hash-key",
		Short:   "Print the bcrypt hash of an operator API key",
		Long:    `The printed hash goes into OPERATOR_API_KEY_HASH; the plain key is what operators send to /api/v1/auth/token.`,
		Example: `  reco-cli hash-key --key "s3cret-ops-key"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(key)
			if err != nil {
				return fmt.Errorf("failed to hash key: %w", err)
			}
			fmt.Println(string(hash))
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Plaintext operator API key")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}
