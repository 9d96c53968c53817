package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/receiptvault/receiptvault/drivers/gdrive"
	"github.com/receiptvault/receiptvault/internal/bootstrap"
	"github.com/receiptvault/receiptvault/internal/conf"
	"github.com/receiptvault/receiptvault/pkg/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newClient() (*gdrive.GoogleDrive, error) {
	cfg := conf.Conf
	return gdrive.New(gdrive.Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RefreshToken: cfg.RefreshToken,
		RedirectURI:  cfg.RedirectURI,
	}, gdrive.WithURLConcurrency(cfg.URLConcurrency))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "receiptvault",
		Short:         "Store and browse receipt photos on Google Drive",
		Version:       conf.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := conf.Load()
			if err != nil {
				return err
			}
			bootstrap.InitLog(cfg)
			return nil
		},
	}
	root.AddCommand(newUploadCmd(), newListCmd(), newURLCmd())
	return root
}

func newUploadCmd() *cobra.Command {
	var (
		description string
		when        string
	)
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a receipt photo into receipts/<year>/<month>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := time.Now()
			if when != "" {
				parsed, err := time.Parse(time.RFC3339, when)
				if err != nil {
					return fmt.Errorf("invalid --time %q: %w", when, err)
				}
				ts = parsed
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			res, err := client.UploadReceipt(cmd.Context(), args[0], description, ts)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"file_id": res.FileID,
				"folder":  res.FolderPath,
			}).Info("receipt stored")
			fmt.Printf("%s\t%s\n", res.FileID, res.FolderPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "receipt description, e.g. \"Gas\"")
	cmd.Flags().StringVar(&when, "time", "", "capture time as RFC 3339 (default: now)")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every stored receipt with its display URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			receipts, err := client.ListReceipts(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				fmt.Println(utils.MarshalIndentString(receipts))
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tDESCRIPTION\tSIZE\tURL")
			var totalSize int64
			for _, r := range receipts {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					r.CreatedTime.Format("2006-01-02 15:04"), r.Description, r.Size, r.ImageURL)
				totalSize += r.Size
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("%d receipts, %d bytes\n", len(receipts), totalSize)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print receipts as JSON")
	return cmd
}

func newURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url <file-id>",
		Short: "Print the public display URL for a stored receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			fmt.Println(client.DisplayURL(cmd.Context(), args[0]))
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
