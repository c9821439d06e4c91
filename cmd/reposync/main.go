package main

import (
	"os"

	"github.com/schmitthub/reposync/internal/reposync"
)

func main() {
	os.Exit(reposync.Main())
}
