package ui

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

const (
	summaryTitleConstant     = "\n📜 Project Summary:\n"
	summaryClosingConstant   = "✨ All done. May your commits be mighty!\n\n"
	workingDirectoryLabel    = "Working Dir"
	gitUserLabel             = "Git User"
	emailLabel               = "Email"
	remoteLabel              = "Remote"
	dryRunLabel              = "Dry Run"
	remoteNotSetConstant     = "Not set"
	affirmativeLabelConstant = "Yes"
	negativeLabelConstant    = "No"
	summaryRowPrefixConstant = "  -"
	summaryColumnSeparator   = ":"
)

// Summary is the closing report of a setup run.
type Summary struct {
	WorkingDirectory string
	Username         string
	Email            string
	RemoteReference  string
	DryRun           bool
}

// Rows returns the label/value pairs in display order.
func (summary Summary) Rows() [][]string {
	remote := summary.RemoteReference
	if len(remote) == 0 {
		remote = remoteNotSetConstant
	}
	dryRun := negativeLabelConstant
	if summary.DryRun {
		dryRun = affirmativeLabelConstant
	}
	return [][]string{
		{workingDirectoryLabel, summary.WorkingDirectory},
		{gitUserLabel, summary.Username},
		{emailLabel, summary.Email},
		{remoteLabel, remote},
		{dryRunLabel, dryRun},
	}
}

// RenderSummary writes the summary as a borderless table followed by the closing line.
func RenderSummary(writer io.Writer, summary Summary) {
	if writer == nil {
		return
	}
	fmt.Fprint(writer, summaryTitleConstant)

	table := tablewriter.NewWriter(writer)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetRowLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator(summaryColumnSeparator)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range summary.Rows() {
		table.Append([]string{summaryRowPrefixConstant + " " + row[0], row[1]})
	}
	table.Render()

	fmt.Fprint(writer, summaryClosingConstant)
}
