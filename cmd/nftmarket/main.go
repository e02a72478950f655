// Command nftmarket is a client for the NFT registry marketplace.
package main

func main() {
	Execute()
}
