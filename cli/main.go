// Command hivewatch-cli submits one colony sighting from the terminal: it
// attaches an image, resolves coordinates, runs server-side verification and
// then either auto-stores after the countdown or stores on Enter.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"hivewatch/capture"
	"hivewatch/geocode"
	"hivewatch/models"
	"hivewatch/workflow"
)

var (
	server    string
	imagePath string
	lat, long float64
	hasFix    bool
	location  string
	otherLoc  string
	role      string
	phone     string
	address   string
	delaySec  int
	noWait    bool
)

func init() {
	flag.StringVar(&server, "server", "http://127.0.0.1:8080", "HiveWatch API base URL")
	flag.StringVar(&imagePath, "image", "", "path of the sighting photo (required)")
	flag.Float64Var(&lat, "lat", 0, "latitude of the sighting")
	flag.Float64Var(&long, "long", 0, "longitude of the sighting")
	flag.StringVar(&location, "location", models.LocationBuildings,
		"location type: Buildings | Farm | Tall Cliffs/Tree | Bridges | Other")
	flag.StringVar(&otherLoc, "other", "", "location description when -location=Other")
	flag.StringVar(&role, "role", models.RoleGeneralPublic,
		"reporter role: Farmer | General Public | Authorized Person | Researcher | Student")
	flag.StringVar(&phone, "phone", "", "callback phone number")
	flag.StringVar(&address, "address", "", "address (reverse-geocoded when empty)")
	flag.IntVar(&delaySec, "delay", 60, "seconds before the report stores itself")
	flag.BoolVar(&noWait, "yes", false, "store immediately without the countdown")
}

// flagFix feeds the capture builder from the -lat/-long flags. Without an
// explicit fix it errors so the fallback coordinate kicks in.
type flagFix struct{}

func (flagFix) Current(ctx context.Context) (models.GPS, error) {
	if !hasFix {
		return models.GPS{}, errors.New("no coordinates given")
	}
	return models.GPS{Lat: lat, Long: long}, nil
}

func main() {
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "long" {
			hasFix = true
		}
	})
	if imagePath == "" {
		fmt.Fprintln(os.Stderr, "an -image is required")
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		fatal("cannot read image: %v", err)
	}

	ctx := context.Background()
	builder := capture.NewBuilder(flagFix{})
	if err := builder.AttachUpload(ctx, imagePath, data); err != nil {
		fatal("attach image: %v", err)
	}
	builder.SetLocationType(location, otherLoc)
	builder.SetUserRole(role)
	builder.SetPhoneNumber(phone)

	draft := builder.Draft()
	gps := draft.Coordinates()
	if address == "" {
		// Best effort; the report is fine without an address.
		if addr, err := geocode.NewClient().Reverse(ctx, gps.Lat, gps.Long); err == nil {
			address = addr
		}
	}
	builder.SetAddress(address)

	api := newAPIClient(server)
	session := workflow.NewSession(api, api, workflow.Config{
		StoreDelay:   time.Duration(delaySec) * time.Second,
		TickInterval: time.Second,
	}, workflow.Hooks{
		OnTick: func(remaining time.Duration) {
			fmt.Printf("\rStoring in %3.0fs (press Enter to store now)", remaining.Seconds())
		},
	})

	fmt.Println("Verifying image...")
	if err := session.Submit(ctx, builder.Draft()); err != nil {
		fatal("verification failed: %v", err)
	}

	result := session.Result()
	if session.State() == workflow.StateRejected {
		fmt.Printf("Not a honeybee colony (confidence %d%%, saw: %v).\n",
			result.Confidence, result.Labels)
		fmt.Println("Try again with a clearer photo of the hive.")
		os.Exit(1)
	}
	fmt.Printf("Verified: honeybee colony, confidence %d%%.\n", result.Confidence)

	report, err := confirmOrWait(ctx, session)
	if err != nil {
		fatal("store failed: %v", err)
	}
	fmt.Printf("\nReport stored (id %s, image %s).\n", report.ID.Hex(), report.Image)

	printFollowUp(ctx, api, report)
}

// confirmOrWait stores immediately with -yes, otherwise waits for Enter or
// for the countdown to fire, whichever comes first.
func confirmOrWait(ctx context.Context, session *workflow.Session) (models.Report, error) {
	if noWait {
		return session.Confirm(ctx)
	}

	enter := make(chan struct{})
	go func() {
		bufio.NewReader(os.Stdin).ReadString('\n')
		close(enter)
	}()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-enter:
			return session.Confirm(ctx)
		case <-ticker.C:
			if session.State() == workflow.StateStored {
				// The countdown fired; Confirm hands back the stored report.
				return session.Confirm(ctx)
			}
			if err := session.Err(); err != nil {
				return models.Report{}, err
			}
		}
	}
}

func printFollowUp(ctx context.Context, api *apiClient, report models.Report) {
	if contact, err := api.EmergencyContact(ctx, report.GPS); err == nil {
		fmt.Printf("\nEmergency contact: %s, %s (%s) %s\n",
			contact.ContactName, contact.Designation, contact.Region, contact.PhoneNumber)
	}
	g, err := api.Guidance(ctx, report.LocationType, report.UserRole, report.GPS)
	if err != nil {
		return
	}
	if g.Advisory != "" {
		fmt.Printf("\n!! %s\n", g.Advisory)
	}
	fmt.Println("\nDo:")
	for _, d := range g.Dos {
		fmt.Println("  -", d)
	}
	fmt.Println("Don't:")
	for _, d := range g.Donts {
		fmt.Println("  -", d)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
