package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// documentsCmd is the parent command for document operations.
var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "Manage uploaded documents",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE:  runDocumentsList,
}

var documentsUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsUpload,
}

var documentsDownloadOut string

var documentsDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDownload,
}

var documentsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsRemove,
}

func init() {
	documentsDownloadCmd.Flags().StringVarP(&documentsDownloadOut, "output", "o", "", "Output path (default: document name in current directory)")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsUploadCmd)
	documentsCmd.AddCommand(documentsDownloadCmd)
	documentsCmd.AddCommand(documentsRemoveCmd)
}

func runDocumentsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	docs, err := a.documents.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("No documents uploaded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSIZE\tUPLOADED")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", d.ID, d.Name, d.Size, d.UploadedAt)
	}
	return w.Flush()
}

func runDocumentsUpload(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	doc, err := a.documents.Upload(cmd.Context(), filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded %s as document %s\n", doc.Name, doc.ID)
	return nil
}

func runDocumentsDownload(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out := documentsDownloadOut
	if out == "" {
		out = args[0]
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	n, err := a.documents.Download(cmd.Context(), args[0], f)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d bytes to %s\n", n, out)
	return nil
}

func runDocumentsRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.documents.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted document %s\n", args[0])
	return nil
}
