package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/soundboard/internal/model"
	"github.com/ytget/soundboard/internal/platform"
	"github.com/ytget/soundboard/internal/project"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "soundboard-pack",
		Short: "Inspect and unpack exported soundboard projects",
		Long: `soundboard-pack works on the JSON files written by the soundboard export.

It lists the tabs and pads a file carries and writes the embedded audio
back to regular files.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newInspectCmd(), newExtractCmd())
	return root
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the tabs, pads and audio of a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := readProject(args[0])
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), file)
		},
	}
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE DIR",
		Short: "Write every embedded audio of a project file to DIR",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := readProject(args[0])
			if err != nil {
				return err
			}
			written, err := extractAudios(file, args[1])
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d audio files written to %s\n", len(written), args[1])
			return nil
		},
	}
}

func readProject(path string) (*project.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open project file: %w", err)
	}
	defer f.Close()

	file, err := project.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return file, nil
}

func printSummary(w io.Writer, file *project.File) error {
	s := project.Summarize(file)
	fmt.Fprintf(w, "version:  %d\n", s.Version)
	fmt.Fprintf(w, "created:  %s\n", s.CreatedAt)
	fmt.Fprintf(w, "tabs:     %d\n", s.Tabs)
	fmt.Fprintf(w, "pads:     %d\n", s.Pads)
	fmt.Fprintf(w, "audios:   %d (%d bytes)\n", s.Audios, s.Bytes)

	if file.State == nil {
		return nil
	}
	embedded := make(map[string]bool, len(file.Audios))
	for _, entry := range file.Audios {
		embedded[entry.PadID] = true
	}
	for _, tab := range file.State.Tabs {
		marker := ""
		if tab.ID == file.State.ActiveTabID {
			marker = " *"
		}
		fmt.Fprintf(w, "\n[%s]%s\n", tab.Name, marker)
		for _, pad := range tab.Pads {
			audio := "-"
			if embedded[pad.ID] {
				audio = "audio"
			}
			duration := ""
			if pad.Playback.Duration > 0 {
				duration = model.FormatTime(pad.Playback.Duration)
			}
			fmt.Fprintf(w, "  %-28s %5s  %s\n", pad.Name, duration, audio)
		}
	}
	return nil
}

// extractAudios decodes every embedded audio into dir and returns the paths
func extractAudios(file *project.File, dir string) ([]string, error) {
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	written := make([]string, 0, len(file.Audios))
	for _, entry := range file.Audios {
		if entry.PadID == "" || entry.Base64 == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(entry.Base64)
		if err != nil {
			return written, fmt.Errorf("invalid audio for pad %s: %w", entry.PadID, err)
		}

		path := filepath.Join(dir, audioFileName(entry))
		if err := platform.WriteFile(path, data); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// audioFileName builds "<name>-<pad id><ext>" with path separators removed
func audioFileName(entry project.AudioEntry) string {
	name := model.StripExtension(entry.Name)
	if name == "" {
		name = project.DefaultName
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("%s-%s%s", name, entry.PadID, platform.ExtensionForMIME(entry.MIME))
}
