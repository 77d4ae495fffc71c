// Command slabctl inspects slab.Pool layouts and benchmarks concurrent
// alloc/free throughput.
package main

func main() {
	execute()
}
