// Command kz-area lists the merged waterways of a named place, resolved via
// Nominatim.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/01100100/kreuzungen/nominatim"
	"github.com/01100100/kreuzungen/overpass"
	"github.com/01100100/kreuzungen/waterways"
)

var place = flag.StringP("area", "a", "", "Place name to look up, e.g. \"Berlin\"")
var relationsOnly = flag.Bool("relations-only", false, "Fetch only waterways mapped as relations")

func init() {
	err := godotenv.Load(".env", ".env.local")
	if err != nil {
		log.Println(err)
	}

	flag.Parse()
}

func main() {
	ctx := context.Background()

	if *place == "" {
		log.Fatal("--area is required")
	}

	nc := nominatim.New(os.Getenv("NOMINATIM_ENDPOINT"))
	areaID, err := nc.AreaID(ctx, *place)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("resolved %q to area %d", *place, areaID)

	op := overpass.New(os.Getenv("OVERPASS_ENDPOINT"))
	ws, err := waterways.ForArea(ctx, op, areaID, *relationsOnly)
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range ws {
		fmt.Printf("%s (%s, %d fragments)\n", w.Name, w.ID, len(w.Props))
	}
	log.Printf("%d waterways in %q", len(ws), *place)
}
