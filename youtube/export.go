package youtube

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var historyCmd = &cli.Command{
	Name: "history",
	Commands: []*cli.Command{
		historyExportCmd,
	},
}

var historyExportCmd = &cli.Command{
	Name:  "export",
	Usage: "Export the download history to a spreadsheet",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "db",
			Value: "./tubeget.db",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   "history.xlsx",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		history, err := NewHistory(command.String("db"))
		if err != nil {
			return err
		}

		entries, err := history.All()
		if err != nil {
			return err
		}

		outputPath := command.String("output")
		err = exportHistory(entries, outputPath)
		if err != nil {
			return err
		}

		zap.L().Info("History exported", zap.String("output", outputPath),
			zap.Int("entries", len(entries)))
		return nil
	},
}

func exportHistory(entries []HistoryEntry, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "History"
	err := f.SetSheetName("Sheet1", sheet)
	if err != nil {
		return err
	}

	headers := []string{"Video ID", "Channel", "Title", "Mode", "Playlist ID", "File Name", "Downloaded At"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err = f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, entry := range entries {
		values := []any{
			entry.VideoID, entry.Channel, entry.Title,
			entry.Mode, entry.PlaylistID, entry.FileName,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err = f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
