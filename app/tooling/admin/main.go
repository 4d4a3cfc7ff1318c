// This program performs administrative tasks for the blockchain node.
package main

import "github.com/ardanlabs/minichain/app/tooling/admin/cmd"

func main() {
	cmd.Execute()
}
