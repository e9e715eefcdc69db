package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the project root so tests resolve configs/ and logs/ the same way the server does
	// usage is
	//
	//   in some_test.go,
	//   import (
	//     _ "liyu1981.xyz/consumable-wear-service/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
