// Package mcpserver exposes the notes of the signed-in user as MCP tools
// served over stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/models"
)

const serverName = "go-notes"

var errMissingID = errors.New("id is required")

type noteTools struct {
	notes  service.ClientNoteService
	logger *logger.Logger
}

// New builds an MCP server with the note tools registered.
func New(notes service.ClientNoteService, version string, logger *logger.Logger) *server.MCPServer {
	t := &noteTools{notes: notes, logger: logger}

	s := server.NewMCPServer(serverName, version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes of the signed-in user with their ids, titles and update dates."),
	), t.list)

	s.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the markdown content of a note."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Id of the note.")),
	), t.read)

	s.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a markdown note."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the note.")),
		mcp.WithString("content", mcp.Description("Markdown content of the note.")),
	), t.create)

	s.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Replace the title or the content of a note. Omitted fields keep their value."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Id of the note.")),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("content", mcp.Description("New markdown content.")),
	), t.update)

	s.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note permanently."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Id of the note.")),
	), t.delete)

	s.AddTool(mcp.NewTool("share_note",
		mcp.WithDescription("Make a note public and return its share link."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Id of the note.")),
		mcp.WithBoolean("allow_public_edit", mcp.Description("Let anyone with the link edit the note.")),
	), t.share)

	s.AddTool(mcp.NewTool("stop_sharing",
		mcp.WithDescription("Make a public note private again. The old link stops working."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Id of the note.")),
	), t.stopSharing)

	return s
}

// Serve answers MCP requests on in and out until ctx is done or in is
// closed.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	if err := server.NewStdioServer(s).Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}

func (t *noteTools) list(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := t.notes.List(ctx)
	if err != nil {
		return t.failed("list_notes", err), nil
	}
	if len(notes) == 0 {
		return mcp.NewToolResultText("no notes yet."), nil
	}

	var b strings.Builder
	for _, note := range notes {
		fmt.Fprintf(&b, "- %s | %s | updated %s", note.ID, displayTitle(note.Title), note.UpdatedAt.UTC().Format("2006-01-02 15:04"))
		if note.IsShared() {
			b.WriteString(" | shared")
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (t *noteTools) read(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError(errMissingID.Error()), nil
	}

	note, err := t.notes.Get(ctx, id)
	if err != nil {
		return t.failed("read_note", err), nil
	}
	return mcp.NewToolResultText(t.render(note)), nil
}

func (t *noteTools) create(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, err := t.notes.Create(ctx, models.NoteContent{
		Title:   req.GetString("title", ""),
		Content: req.GetString("content", ""),
	})
	if err != nil {
		return t.failed("create_note", err), nil
	}
	return mcp.NewToolResultText("created note " + note.ID), nil
}

func (t *noteTools) update(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError(errMissingID.Error()), nil
	}

	current, err := t.notes.Get(ctx, id)
	if err != nil {
		return t.failed("update_note", err), nil
	}

	note, err := t.notes.Update(ctx, id, models.NoteContent{
		Title:   req.GetString("title", current.Title),
		Content: req.GetString("content", current.Content),
	})
	if err != nil {
		return t.failed("update_note", err), nil
	}
	return mcp.NewToolResultText("updated note " + note.ID), nil
}

func (t *noteTools) delete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError(errMissingID.Error()), nil
	}

	if err := t.notes.Delete(ctx, id); err != nil {
		return t.failed("delete_note", err), nil
	}
	return mcp.NewToolResultText("deleted note " + id), nil
}

func (t *noteTools) share(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError(errMissingID.Error()), nil
	}

	note, err := t.notes.Share(ctx, id)
	if err != nil {
		return t.failed("share_note", err), nil
	}

	if allow := req.GetBool("allow_public_edit", note.AllowPublicEdit); allow != note.AllowPublicEdit {
		if note, err = t.notes.SetPublicEdit(ctx, id, allow); err != nil {
			return t.failed("share_note", err), nil
		}
	}

	text := t.notes.ShareLink(note)
	if note.AllowPublicEdit {
		text += "\nanyone with the link can edit this note"
	}
	return mcp.NewToolResultText(text), nil
}

func (t *noteTools) stopSharing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError(errMissingID.Error()), nil
	}

	if _, err := t.notes.StopSharing(ctx, id); err != nil {
		return t.failed("stop_sharing", err), nil
	}
	return mcp.NewToolResultText("note " + id + " is private"), nil
}

// render prints a note as markdown with a short header.
func (t *noteTools) render(note models.Note) string {
	var b strings.Builder
	b.WriteString("# " + displayTitle(note.Title) + "\n\n")
	b.WriteString("id: " + note.ID + "\n")
	b.WriteString("updated: " + note.UpdatedAt.UTC().Format("2006-01-02 15:04") + "\n")
	if link := t.notes.ShareLink(note); link != "" {
		b.WriteString("share link: " + link + "\n")
	}
	b.WriteString("\n")
	b.WriteString(note.Content)
	return b.String()
}

// failed reports err to the model as a tool error instead of a protocol
// error.
func (t *noteTools) failed(tool string, err error) *mcp.CallToolResult {
	t.logger.Warn().Err(err).Str("func", "*noteTools."+tool).Msg("tool call failed")
	return mcp.NewToolResultError(err.Error())
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "untitled"
	}
	return title
}
