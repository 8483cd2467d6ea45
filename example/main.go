// File: strataconf/strata/example/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/strataconf/strata"
)

// AppConfig is the shape the demo decodes the merged tree into.
type AppConfig struct {
	Server struct {
		Host    string        `strata:"host"`
		Port    int64         `strata:"port"`
		Timeout time.Duration `strata:"timeout"`
	} `strata:"server"`
	Features []string `strata:"features"`
}

const configFilePath = "config.json"

func main() {
	// Write a base config file for the demo to layer on top of.
	base := `{
  "server": {"host": "localhost", "port": 8080, "timeout": "30s"},
  "features": ["auth", "metrics"]
}`
	if err := os.WriteFile(configFilePath, []byte(base), 0644); err != nil {
		log.Fatal(err)
	}
	defer os.Remove(configFilePath)

	// Simulate a deployment override.
	os.Setenv("DEMO_SERVER_PORT", "9090")

	cfg, err := strata.NewBuilder().
		Defaults(map[string]any{
			"server": map[string]any{"host": "0.0.0.0"},
			"debug":  false,
		}).
		AddFile(configFilePath).
		Add(strata.NewSource("overrides", strata.FormatYAML,
			"features:\n  - auth\n  - tracing\n")).
		Env("DEMO_", "_").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	// The file beats the defaults, the YAML literal beats the file,
	// and the environment beats everything.
	host, _ := cfg.String("server.host")
	port, _ := cfg.Int64("server.port")
	features, _ := cfg.StringSlice("features")
	fmt.Printf("host=%s port=%d features=%v\n", host, port, features)

	var app AppConfig
	if err := cfg.Scan("", &app); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("decoded: %+v\n", app)

	// Runtime tweak, persisted back through the file source.
	cfg.Set("server.host", strata.String("example.com"))
	if _, err := cfg.Save(configFilePath); err != nil {
		log.Fatal(err)
	}

	// Reload picks the change back up from disk.
	if err := cfg.Reload(); err != nil {
		log.Fatal(err)
	}
	host, _ = cfg.String("server.host")
	fmt.Printf("after save+reload: host=%s\n", host)
}
