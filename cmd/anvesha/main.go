// Command anvesha is the entrypoint for the anvesha-crawler CLI.
package main

import "github.com/shreyas-bk24/anvesha-crawler/cmd"

func main() {
	cmd.Execute()
}
