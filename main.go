package main

import "github.com/bgokden/skynet-tfrecords/cmd"

func main() {
	cmd.Execute()
}
