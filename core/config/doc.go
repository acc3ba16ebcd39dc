// Package config provides configuration management for isoserve.
//
// It uses Viper to read environment variables, optionally preloaded from a .env
// file with godotenv. Every field carries a compiled-in default, so an empty
// environment yields the standard setup: port 8080, document root
// ./build-emscripten, root document index.html.
//
// # Configuration Structure
//
//   - Server: port, document root, root document (SERVER_PORT, SERVER_DOCUMENT_ROOT, SERVER_ROOT_DOCUMENT)
//   - Log: level, format and output (LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT)
//
// The loaded value is never mutated afterwards; it is passed to server.New.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.Port)
package config
