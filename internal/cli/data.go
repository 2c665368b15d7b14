package cli

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage parallel corpora (download, statistics)",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	var downloadURL, downloadDataFolder string
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download and unpack a .tar.gz corpus archive",
		Example: `  align data download --url https://example.org/hansards.tar.gz
  align data download --url https://example.org/hansards.tar.gz --data-folder corpora`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dataDownload(downloadURL, downloadDataFolder)
		},
	}
	downloadCmd.Flags().StringVar(&downloadURL, "url", "", "URL of a .tar.gz archive whose files start with data/")
	downloadCmd.Flags().StringVar(&downloadDataFolder, "data-folder", "data", "Destination folder for the corpus")
	_ = downloadCmd.MarkFlagRequired("url")

	var cf corpusFlags
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print sentence, token and vocabulary counts of a corpus",
		Example: `  align data stats -d data/hansards
  align data stats -d data/europarl -f de -e en --lowercase`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := cf.load()
			if err != nil {
				return err
			}
			st := data.ComputeStats()
			fmt.Printf("Sentence pairs: %d\n", st.Pairs)
			fmt.Printf("%8s  %10s  %8s  %7s  %7s\n", "side", "tokens", "vocab", "empty", "longest")
			fmt.Printf("%8s  %10d  %8d  %7d  %7d\n", "source", st.SourceTokens, st.SourceVocab, st.EmptySource, st.MaxSourceWords)
			fmt.Printf("%8s  %10d  %8d  %7d  %7d\n", "target", st.TargetTokens, st.TargetVocab, st.EmptyTarget, st.MaxTargetWords)
			return nil
		},
	}
	cf.bind(statsCmd)

	dataCmd.AddCommand(downloadCmd, statsCmd)
	return dataCmd
}

func dataDownload(url, dataFolder string) error {
	slog.Info("Downloading corpus", "url", url)
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("download data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download data: HTTP %d", resp.StatusCode)
	}

	gr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	count, err := extractTar(gr, dataFolder)
	if err != nil {
		return err
	}
	slog.Info("Corpus extracted", "files", count, "folder", dataFolder)
	return nil
}

// extractTar unpacks regular files and directories below dataFolder.
// A leading "data/" in entry names is replaced by dataFolder.
func extractTar(r io.Reader, dataFolder string) (int, error) {
	root := filepath.Clean(dataFolder)
	tr := tar.NewReader(r)
	count := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read tar: %w", err)
		}

		name := strings.TrimPrefix(hdr.Name, "data/")
		target := filepath.Join(root, name)
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return count, fmt.Errorf("read tar: entry %q escapes %s", hdr.Name, dataFolder)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return count, fmt.Errorf("create dir %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return count, fmt.Errorf("create parent dir: %w", err)
			}
			f, err := os.Create(target)
			if err != nil {
				return count, fmt.Errorf("create file %s: %w", target, err)
			}
			if _, err := io.Copy(f, tr); err != nil {
				_ = f.Close()
				return count, fmt.Errorf("write file %s: %w", target, err)
			}
			_ = f.Close()
			count++
		}
	}
	return count, nil
}
