package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"translate-chat/api"
	"translate-chat/auth"
	"translate-chat/blob"
	"translate-chat/channel"
	"translate-chat/contract"
	"translate-chat/domain"
	"translate-chat/internal"
	"translate-chat/moderation"
	"translate-chat/observability"
	"translate-chat/runtime"
	"translate-chat/services"
	"translate-chat/sink"
	"translate-chat/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the session lifecycle, and
// centralizes error reporting. Returning an error instead of calling os.Exit
// keeps every defer (database close, subscription teardown) running on the
// way out.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Local image cache (BadgerDB)
	opts := badger.DefaultOptions(config.BadgerFilepath).WithLogger(nil)
	if config.BadgerFilepath == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("image cache opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Clients & session identity
	restClient := api.NewClient(log, config.ApiBaseURL)
	topics := transport.NewClient(log, config.TopicsBaseURL, config.Namespace)
	session := domain.NewSession(config.Username)

	var vendor contract.TokenVendor = restClient
	if config.LocalAuth {
		if config.AuthSecret == "" {
			return fmt.Errorf("LOCAL_AUTH requires AUTH_SECRET")
		}
		vendor = auth.NewLocalVendor(config.AuthSecret, config.AuthTokenDuration)
	}
	broker := auth.NewBroker(log, vendor, session)

	// 4. Moderation
	censorRune, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return err
	}
	moderator, err := moderation.NewModerator(config.WordList(), censorRune)
	if err != nil {
		return fmt.Errorf("moderation setup failed: %w", err)
	}

	// 5. Session assembly
	metrics := observability.NewSessionMetrics(log)
	manager := channel.NewManager(log, topics)

	var events contract.EventSink = &terminalSink{self: config.Username}
	if config.TranscriptPath != "" {
		transcript, err := sink.NewTranscript(log, config.TranscriptPath)
		if err != nil {
			return fmt.Errorf("transcript opening failed: %w", err)
		}
		defer transcript.Close()
		events = sink.NewFanout(events, transcript)
	}

	coordinator := runtime.NewSessionCoordinator(
		log, broker, manager, restClient, events, metrics, config.RefreshInterval)
	publisher := services.NewPublisher(log, broker, topics, moderator, metrics, session)
	images := blob.NewImageStore(log, topics, db, config.ImageTTL)
	chat := services.NewChatService(log, coordinator, publisher, images, restClient, broker, metrics)

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coordinatorDone := make(chan struct{})
	go func() {
		defer close(coordinatorDone)
		_ = coordinator.Run(ctx)
	}()

	if err := chat.SetLanguage(ctx, config.DefaultLanguage); err != nil {
		return fmt.Errorf("initial subscription failed: %w", err)
	}
	color.Green.Printf("Connected as %s on %q. /lang /langs /img /stats /quit\n",
		config.Username, config.DefaultLanguage)

	// 7. Input loop
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down gracefully...")
			<-coordinatorDone
			log.Info("Program stopped cleanly")
			return nil
		case line, ok := <-lines:
			if !ok {
				stop()
				continue
			}
			if quit := handleLine(ctx, chat, line); quit {
				stop()
			}
		}
	}
}

// handleLine executes one console command. Anything not starting with a
// slash is sent as a chat message. Returns true when the user asked to quit.
func handleLine(ctx context.Context, chat *services.ChatService, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	switch {
	case line == "/quit":
		return true

	case line == "/langs":
		catalog, err := chat.Languages(ctx)
		if err != nil {
			color.Red.Println(err)
			return false
		}
		table := newTable([]string{"Code", "Label"})
		for _, lang := range catalog {
			table.Append([]string{lang.Value, lang.Label})
		}
		table.Render()

	case strings.HasPrefix(line, "/lang "):
		language := strings.TrimSpace(strings.TrimPrefix(line, "/lang "))
		if err := chat.SetLanguage(ctx, language); err != nil {
			color.Red.Println(err)
		}

	case strings.HasPrefix(line, "/img "):
		path := strings.TrimSpace(strings.TrimPrefix(line, "/img "))
		data, err := os.ReadFile(path)
		if err != nil {
			color.Red.Println(err)
			return false
		}
		if _, err := chat.SendImage(ctx, data); err != nil {
			color.Red.Println(err)
		}

	case line == "/stats":
		stats := chat.Stats()
		table := newTable([]string{"Metric", "Value"})
		table.Append([]string{"language", stats.Language})
		table.Append([]string{"delivered", fmt.Sprintf("%d", stats.MessagesDelivered)})
		table.Append([]string{"published", fmt.Sprintf("%d", stats.MessagesPublished)})
		table.Append([]string{"reconnects", fmt.Sprintf("%d", stats.Reconnects)})
		table.Append([]string{"token refreshes", fmt.Sprintf("%d", stats.TokenRefreshes)})
		table.Append([]string{"stream errors", fmt.Sprintf("%d", stats.StreamErrors)})
		table.Append([]string{"images staged", fmt.Sprintf("%d", stats.ImagesStaged)})
		table.Render()

	case strings.HasPrefix(line, "/"):
		color.Yellow.Printf("Unknown command %q\n", strings.Fields(line)[0])

	default:
		if _, err := chat.Send(ctx, line); err != nil {
			color.Red.Println(err)
		}
	}
	return false
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// terminalSink renders history snapshots and live messages to the console.
type terminalSink struct {
	self string
}

func (s *terminalSink) ReplaceHistory(messages []domain.ChatMessage) {
	color.Gray.Printf("--- last %d messages ---\n", len(messages))
	for _, m := range messages {
		s.print(m)
	}
}

func (s *terminalSink) Deliver(message domain.ChatMessage) {
	s.print(message)
}

func (s *terminalSink) Failure(err error) {
	color.Red.Printf("connection trouble: %v\n", err)
}

func (s *terminalSink) print(m domain.ChatMessage) {
	body := m.Message
	if m.Kind == domain.KindImage {
		body = fmt.Sprintf("[image %s]", m.Message)
	}
	name := color.Cyan.Sprint(m.User.Name)
	if m.User.Name == s.self {
		name = color.Green.Sprint(m.User.Name)
	}
	fmt.Printf("%s %s: %s\n", m.SentAt().Format("15:04"), name, body)
}
