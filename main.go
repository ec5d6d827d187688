// main.go

package main

import (
	"github.com/CodeMonkeyCybersecurity/inq/cmd"
)

func main() {
	cmd.Execute()
}
