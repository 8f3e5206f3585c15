package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	bannerColorConstant = "6"
	bannerArtConstant   = ` _____       _      _   ______                 
|  _  |     (_)    | |  | ___ \                
| | | |_   _ _  ___| | _| |_/ /___ _ __   ___  
| | | | | | | |/ __| |/ /    // _ \ '_ \ / _ \ 
\ \/' / |_| | | (__|   <| |\ \  __/ |_) | (_) |
 \_/\_\\__,_|_|\___|_|\_\_| \_\___| .__/ \___/ 
                                  | |          
                                  |_|          `
)

// RenderBanner writes the bold cyan banner. Color is dropped when the writer is not a terminal.
func RenderBanner(writer io.Writer) {
	if writer == nil {
		return
	}
	renderer := lipgloss.NewRenderer(writer)
	bannerStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(bannerColorConstant))
	fmt.Fprintln(writer, bannerStyle.Render(bannerArtConstant))
	fmt.Fprintln(writer)
}
