// Command kz-route prints the waterways a route crosses, in the order the
// route meets them, together with the activity annotation that would be
// written for it.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/01100100/kreuzungen/geo"
	"github.com/01100100/kreuzungen/overpass"
	"github.com/01100100/kreuzungen/stash"
	"github.com/01100100/kreuzungen/waterways"
)

var gpxPath = flag.StringP("gpx", "g", "", "Path of a GPX file to read the route from")
var encoded = flag.StringP("polyline", "p", "", "Encoded polyline to read the route from")
var savedID = flag.String("route", "", "Id of a saved route to load")
var save = flag.Bool("save", false, "Save the route and print its share URL")
var areaLimit = flag.Float64("bbox-area-limit", 0, "Bounding box area limit in m², 0 for the default")

func init() {
	err := godotenv.Load(".env", ".env.local")
	if err != nil {
		log.Println(err)
	}

	flag.Parse()
}

func main() {
	ctx := context.Background()

	route := loadRoute(ctx)

	op := overpass.New(os.Getenv("OVERPASS_ENDPOINT"))
	crossed, err := waterways.Crossings(ctx, op, route, waterways.Config{BBoxAreaLimit: *areaLimit})
	if err != nil {
		log.Fatal(err)
	}
	if len(crossed) == 0 {
		fmt.Println("No waterways crossed.")
		return
	}

	var names []string
	ordered := waterways.OrderAlongRoute(crossed, route)
	if len(ordered) > 0 {
		for _, c := range ordered {
			fmt.Printf("%8.1f km  %s (%s)\n", c.Distance/1000, c.Name, c.ID)
			names = append(names, c.Name)
		}
	} else {
		for _, w := range crossed {
			fmt.Printf("            %s (%s)\n", w.Name, w.ID)
			names = append(names, w.Name)
		}
	}

	fmt.Println()
	fmt.Println(waterways.FormatMessage(names))

	if *save {
		saveRoute(ctx, route)
	}
}

func loadRoute(ctx context.Context) geo.Route {
	switch {
	case *gpxPath != "":
		f, err := os.Open(*gpxPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		route, err := geo.ParseGPX(f)
		if err != nil {
			log.Fatal(err)
		}
		return route
	case *encoded != "":
		route, err := geo.DecodePolyline(*encoded)
		if err != nil {
			log.Fatal(err)
		}
		return route
	case *savedID != "":
		route, err := routeStore(ctx).Route(ctx, *savedID)
		if err != nil {
			log.Fatal(err)
		}
		return route
	default:
		log.Fatal("one of --gpx, --polyline or --route is required")
		return geo.Route{}
	}
}

func saveRoute(ctx context.Context, route geo.Route) {
	saved, err := routeStore(ctx).Save(ctx, route)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nSaved route %s\n%s\n", saved.ID, saved.URL)
}

func routeStore(ctx context.Context) *stash.Store {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := stash.Connect(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "https://kreuzungen.world"
	}
	return stash.New(db, nil, "", baseURL)
}
