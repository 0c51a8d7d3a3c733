package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-recolor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-recolor-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-recolor-mcp - MCP server for selective image recoloring")
			fmt.Println()
			fmt.Println("Usage: image-recolor-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug        Enable debug logging\n", server.EnvLogLevel)
			fmt.Printf("  %s=1024         Downscale wider images to this width (0 = never)\n", server.EnvMaxWidth)
			fmt.Printf("  %s=20          Undo snapshots kept (0 = unbounded)\n", server.EnvUndoDepth)
			fmt.Printf("  %s=false    Keep undo snapshots zstd-compressed\n", server.EnvUndoCompress)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := server.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Debug {
		log.Printf("Image Recolor MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Config: max width %d, undo depth %d, compress %v",
			cfg.MaxDisplayWidth, cfg.UndoDepth, cfg.CompressUndo)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
