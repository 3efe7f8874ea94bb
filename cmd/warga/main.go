// warga is the command-line interface for the Warga Store daemon.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/wargadata-dev/warga-store/pkg/sdk"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	addr := os.Getenv("WARGA_STORE_ADDR")
	if addr == "" {
		addr = "localhost:7101"
	}

	client, err := sdk.Connect(addr)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", addr, err)
	}
	defer client.Close()

	command := strings.ToUpper(os.Args[1])
	args := os.Args[2:]

	switch command {
	case "ADD":
		if len(args) < 2 {
			log.Fatal(`Usage: warga ADD <name> <nationalID> [address] [amount]`)
		}
		address := ""
		amount := ""
		if len(args) >= 3 {
			address = args[2]
		}
		if len(args) >= 4 {
			amount = args[3]
		}
		rec, err := client.Add(args[0], args[1], address, amount)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(rec)

	case "DEL":
		if len(args) < 1 {
			log.Fatal("Usage: warga DEL <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatalf("Invalid id: %v", err)
		}
		if err := client.Delete(id); err != nil {
			log.Fatal(err)
		}
		fmt.Println("OK")

	case "CLEAR":
		if err := client.DeleteAll(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("OK")

	case "LIST":
		records, err := client.List()
		if err != nil {
			log.Fatal(err)
		}
		printJSON(records)

	case "SEARCH":
		query := strings.Join(args, " ")
		records, err := client.Search(query)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(records)

	case "EXPORT":
		if len(args) < 1 {
			log.Fatal("Usage: warga EXPORT <xlsx|pdf|doc>")
		}
		path, err := client.Export(args[0])
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(path)

	case "PING":
		if err := client.Ping(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("PONG")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Warga CLI - Interface for warga-store")
	fmt.Println("\nUsage:")
	fmt.Println("  warga ADD <name> <nationalID> [address] [amount]")
	fmt.Println("  warga DEL <id>")
	fmt.Println("  warga CLEAR")
	fmt.Println("  warga LIST")
	fmt.Println("  warga SEARCH <query>")
	fmt.Println("  warga EXPORT <xlsx|pdf|doc>")
	fmt.Println("  warga PING")
	fmt.Println("\nEnvironment Variables:")
	fmt.Println("  WARGA_STORE_ADDR    Address of the daemon (default: localhost:7101)")
	fmt.Println("  WARGA_DISABLE_TLS   Set to true to disable TLS")
}

func printJSON(v any) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(bytes))
}
