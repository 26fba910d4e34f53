package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/cadence/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// Songbook is the part of the catalog the song tools use.
type Songbook interface {
	Songs(ctx context.Context, genre string) ([]catalog.Song, error)
	Genres(ctx context.Context) ([]catalog.GenreCount, error)
	AddSong(ctx context.Context, song catalog.Song) (int64, error)
}

// SongsTool handles the cadence_songs MCP tool.
type SongsTool struct {
	book Songbook
}

// NewSongsTool creates a SongsTool.
func NewSongsTool(book Songbook) *SongsTool {
	return &SongsTool{book: book}
}

// Definition returns the MCP tool definition for cadence_songs.
func (t *SongsTool) Definition() mcp.Tool {
	return mcp.NewTool("cadence_songs",
		mcp.WithDescription(
			"Browse the song catalog. Without a genre, lists every genre with its song count.",
		),
		mcp.WithString("genre",
			mcp.Description("Genre to list (e.g. Pop, EDM, Ballad, Hip-hop, Classical)"),
		),
	)
}

// Handle processes the cadence_songs tool call.
func (t *SongsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	genre := strings.TrimSpace(req.GetString("genre", ""))

	var sb strings.Builder
	if genre == "" {
		genres, err := t.book.Genres(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing genres: %w", err)
		}
		sb.WriteString("## Genres\n\n")
		for _, g := range genres {
			fmt.Fprintf(&sb, "- **%s**: %d songs\n", g.Genre, g.Songs)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}

	songs, err := t.book.Songs(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	if len(songs) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no songs in genre %q", genre)), nil
	}
	fmt.Fprintf(&sb, "## %s (%d)\n\n", genre, len(songs))
	for _, song := range songs {
		fmt.Fprintf(&sb, "- %s\n", song)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── AddSongTool ────────────────────────────────────────────────────────────

// AddSongTool handles the cadence_add_song MCP tool.
type AddSongTool struct {
	book Songbook
}

// NewAddSongTool creates an AddSongTool.
func NewAddSongTool(book Songbook) *AddSongTool {
	return &AddSongTool{book: book}
}

// Definition returns the MCP tool definition for cadence_add_song.
func (t *AddSongTool) Definition() mcp.Tool {
	return mcp.NewTool("cadence_add_song",
		mcp.WithDescription("Add a song to a genre so future recommendations can pick it."),
		mcp.WithString("genre",
			mcp.Required(),
			mcp.Description("Genre the song belongs to"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Song title, or 'Title - Artist'"),
		),
		mcp.WithString("artist",
			mcp.Description("Artist, when not included in the title"),
		),
	)
}

// Handle processes the cadence_add_song tool call.
func (t *AddSongTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	genre := strings.TrimSpace(req.GetString("genre", ""))
	title := strings.TrimSpace(req.GetString("title", ""))
	if genre == "" {
		return mcp.NewToolResultError("'genre' is required"), nil
	}
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	song := catalog.Song{Genre: genre, Title: title}
	if artist := strings.TrimSpace(req.GetString("artist", "")); artist != "" {
		song.Artist = artist
	} else {
		song = catalog.ParseSong(genre, title)
	}

	id, err := t.book.AddSong(ctx, song)
	if err != nil {
		return failure("adding song", err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added %q to %s\nID: %d", song.String(), song.Genre, id)), nil
}
