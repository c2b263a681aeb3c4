package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case PlayerList:
		o.printPlayerList(v)
	case ScoreResult:
		fmt.Fprintf(o.w, "%s: %d\n", v.Name, v.Score)
	case UpdateResult:
		o.printUpdateResult(v)
	case NameList:
		for _, name := range v {
			fmt.Fprintln(o.w, name)
		}
	case InitStatus:
		o.printInitStatus(v)
	case TokenResult:
		fmt.Fprintf(o.w, "Token saved to %s\n", v.TokenFile)
	case Settings:
		o.printSettings(v)
	case MessageResult:
		fmt.Fprintln(o.w, v.Message)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PlayerScore response type (matches API)
type PlayerScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// PlayerList response type
type PlayerList []PlayerScore

// ScoreResult response type for a single lookup
type ScoreResult struct {
	Name  string `json:"name,omitempty"`
	Score int    `json:"score"`
}

// Player response type for a score update
type Player struct {
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateResult combines the updated player and whether it was created
type UpdateResult struct {
	Player  Player `json:"player"`
	Created bool   `json:"created"`
}

// NameList response type
type NameList []string

// InitStatus response type
type InitStatus struct {
	NeedInit bool `json:"needInit"`
}

// TokenResult carries a token and where it was saved
type TokenResult struct {
	Token     string `json:"token"`
	TokenFile string `json:"tokenFile,omitempty"`
}

// Settings response type
type Settings struct {
	HorsePoints []int `json:"horsePoints"`
	ReturnPoint int   `json:"returnPoint"`
}

// MessageResult response type
type MessageResult struct {
	Message string `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayerList(players PlayerList) {
	if len(players) == 0 {
		fmt.Fprintln(o.w, "No players")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSCORE")
	for _, p := range players {
		fmt.Fprintf(tw, "%s\t%d\n", p.Name, p.Score)
	}
	_ = tw.Flush()
}

func (o *Output) printUpdateResult(u UpdateResult) {
	verb := "Updated"
	if u.Created {
		verb = "Created"
	}
	fmt.Fprintf(o.w, "%s %s: %d\n", verb, u.Player.Name, u.Player.Score)
}

func (o *Output) printInitStatus(s InitStatus) {
	if s.NeedInit {
		fmt.Fprintln(o.w, "Admin password not set; run 'scoreboard admin init'")
		return
	}
	fmt.Fprintln(o.w, "Admin password set")
}

func (o *Output) printSettings(s Settings) {
	points := make([]string, len(s.HorsePoints))
	for i, p := range s.HorsePoints {
		points[i] = fmt.Sprintf("%d", p)
	}
	fmt.Fprintf(o.w, "Horse points: %s\n", strings.Join(points, ", "))
	fmt.Fprintf(o.w, "Return point: %d\n", s.ReturnPoint)
}
