package mcp

import (
	"log/slog"

	"github.com/claude/liftplan/internal/program"
	"github.com/claude/liftplan/internal/technique"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, composer *program.Composer, techniques *technique.Engine, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftPlan workout program server. Browse program archetypes, preview generated programs, inspect a user's stored programs, and check whether advanced training techniques suit an exercise/goal pairing. Technique checks are advisory: a negative verdict is a warning the user may override."),
	)

	h := &handlers{ds: ds, composer: composer, techniques: techniques, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListArchetypes, Handler: h.listArchetypes},
		server.ServerTool{Tool: toolPreviewProgram, Handler: h.previewProgram},
		server.ServerTool{Tool: toolGetActiveProgram, Handler: h.getActiveProgram},
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
		server.ServerTool{Tool: toolGetDay, Handler: h.getDay},
		server.ServerTool{Tool: toolListTechniques, Handler: h.listTechniques},
		server.ServerTool{Tool: toolCheckTechnique, Handler: h.checkTechnique},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resArchetypeCatalog, Handler: h.archetypeCatalog},
		server.ServerResource{Resource: resTechniqueTable, Handler: h.techniqueTable},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds         DataSource
	composer   *program.Composer
	techniques *technique.Engine
	log        *slog.Logger
}

// --- Resource definitions ---

var resArchetypeCatalog = mcp.NewResource(
	"liftplan://archetype_catalog",
	"Archetype Catalog",
	mcp.WithResourceDescription("All program archetypes shipped with this server: name, goal, level, split, day count, and whether a deload variant exists"),
	mcp.WithMIMEType("application/json"),
)

var resTechniqueTable = mcp.NewResource(
	"liftplan://technique_table",
	"Technique Table",
	mcp.WithResourceDescription("The full advanced-technique rule table with applicability sets, fatigue impact, and recovery requirements"),
	mcp.WithMIMEType("application/json"),
)
