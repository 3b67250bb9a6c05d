// Intcsim brings up simulated interrupt controllers from a machine
// description, runs scenarios against them and serves them for inspection.
package main

import "github.com/sarchlab/irqhal/intcsim/cmd"

func main() {
	cmd.Execute()
}
