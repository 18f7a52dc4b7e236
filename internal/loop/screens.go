package loop

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tomz197/starfall/internal/game"
)

// styles holds the text styles of the HUD and overlay screens.
type styles struct {
	title  lipgloss.Style
	text   lipgloss.Style
	dim    lipgloss.Style
	accent lipgloss.Style
	alert  lipgloss.Style
}

func newStyles(w io.Writer, profile termenv.Profile) *styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	base := r.NewStyle().Background(lipgloss.Color("#000814"))
	return &styles{
		title:  base.Foreground(lipgloss.Color("#00ff88")).Bold(true),
		text:   base.Foreground(lipgloss.Color("#ffffff")),
		dim:    base.Foreground(lipgloss.Color("#7f8c9d")),
		accent: base.Foreground(lipgloss.Color("#ffff00")).Bold(true),
		alert:  base.Foreground(lipgloss.Color("#ff0066")).Bold(true),
	}
}

var titleArt = []string{
	`  ___ _____ _   ___ ___ _   _    _    `,
	` / __|_   _/_\ | _ \ __/_\ | |  | |   `,
	` \__ \ | |/ _ \|   / _/ _ \| |__| |__ `,
	` |___/ |_/_/ \_\_|_\_/_/ \_\____|____|`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

var controlLines = []string{
	"WASD / Arrows  . . .  Move",
	"SPACE  . . . . . . .  Fire",
	"P  . . . . . . . . . Pause",
	"Q  . . . . . . . . .  Quit",
}

// drawUI draws the HUD or overlay for the current screen.
func (c *Client) drawUI(now time.Time) {
	col, row, cols, rows := c.canvas.Bounds()
	centerX := col + cols/2
	centerY := row + rows/2

	if c.shutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.inactive {
		c.drawInactivityScreen(centerX, centerY, now)
		return
	}

	switch c.session.State() {
	case game.StateStart:
		c.drawStartScreen(centerX, centerY, now)
	case game.StatePlaying:
		c.drawHUD(col, row, cols)
	case game.StatePaused:
		c.drawHUD(col, row, cols)
		c.drawPauseScreen(centerX, centerY)
	case game.StateGameOver:
		c.drawGameOverScreen(centerX, centerY, now)
	}
}

// writeCentered writes s centred on column centerX.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.cw.WriteAt(max(1, centerX-lipgloss.Width(s)/2), max(1, row), s)
}

// writeBlinking writes s while the blink phase is on and blanks it otherwise.
func (c *Client) writeBlinking(centerX, row int, s string, plain string, now time.Time) {
	if now.UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, row, s)
		return
	}
	c.writeCentered(centerX, row, c.styles.text.Render(strings.Repeat(" ", lipgloss.Width(plain))))
}

// drawHUD draws score, level and lives along the top edge of the playfield.
// Fields are fixed width so shrinking values don't leave residual characters.
func (c *Client) drawHUD(col, row, cols int) {
	score := c.styles.accent.Render(fmt.Sprintf("Score: %-8d", c.stats.Score))
	c.cw.WriteAt(col+1, row, score)

	level := c.styles.text.Render(fmt.Sprintf("Level: %-3d", c.stats.Level))
	c.writeCentered(col+cols/2, row, level)

	lives := c.styles.alert.Render(fmt.Sprintf("Lives: %-3d", c.stats.Lives))
	c.cw.WriteAt(max(col, col+cols-lipgloss.Width(lives)-1), row, lives)
}

func (c *Client) drawStartScreen(centerX, centerY int, now time.Time) {
	y := centerY - 7
	for i, line := range titleArt {
		c.writeCentered(centerX, y+i, c.styles.title.Render(line))
	}
	y += len(titleArt) + 1

	c.writeCentered(centerX, y, c.styles.dim.Render("~ hold the line against the falling swarm ~"))
	y += 2

	c.writeCentered(centerX, y, c.styles.text.Render("Controls"))
	for i, line := range controlLines {
		c.writeCentered(centerX, y+1+i, c.styles.dim.Render(line))
	}
	y += len(controlLines) + 2

	prompt := ">>  Press SPACE or ENTER to Start  <<"
	c.writeBlinking(centerX, y, c.styles.accent.Render(prompt), prompt, now)
}

func (c *Client) drawPauseScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-1, c.styles.title.Render("  PAUSED  "))
	c.writeCentered(centerX, centerY+1, c.styles.dim.Render("Press P to resume"))
}

func (c *Client) drawGameOverScreen(centerX, centerY int, now time.Time) {
	y := centerY - 5
	for i, line := range gameOverArt {
		c.writeCentered(centerX, y+i, c.styles.alert.Render(line))
	}
	y += len(gameOverArt) + 1

	final := c.session.FinalStats()
	c.writeCentered(centerX, y, c.styles.text.Render(fmt.Sprintf("Final score: %d", final.Score)))
	c.writeCentered(centerX, y+1, c.styles.dim.Render(fmt.Sprintf("Reached level %d", final.Level)))

	prompt := ">>  Press R to Restart  <<"
	c.writeBlinking(centerX, y+3, c.styles.accent.Render(prompt), prompt, now)
}

func (c *Client) drawInactivityScreen(centerX, centerY int, now time.Time) {
	c.writeCentered(centerX, centerY-2, c.styles.alert.Render("INACTIVITY WARNING"))

	remaining := max(0, int(InactivityDisconnectUser-now.Sub(c.lastInput).Seconds()))
	msg := fmt.Sprintf("You have been inactive for too long. Disconnecting in %3d seconds.", remaining)
	c.writeCentered(centerX, centerY, c.styles.text.Render(msg))

	c.writeCentered(centerX, centerY+2, c.styles.dim.Render("Press any key to continue"))
}

func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, c.styles.alert.Render("SERVER SHUTTING DOWN"))
	c.writeCentered(centerX, centerY-1, c.styles.text.Render("The server is restarting for maintenance."))
	c.writeCentered(centerX, centerY, c.styles.text.Render("Please reconnect in a moment."))

	remaining := int(c.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, c.styles.accent.Render(fmt.Sprintf("Disconnecting in %2d seconds...", remaining)))
	c.writeCentered(centerX, centerY+4, c.styles.dim.Render("Press Q to disconnect now"))
}
