package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"story-relay/internal/ai"
	"story-relay/internal/models"

	"go.uber.org/zap"
)

// Generator строит параметры и начала историй по жанровым таблицам.
// При наличии AI-клиента начало пишет LLM, при любой ошибке - шаблон.
type Generator struct {
	catalog  *Catalog
	aiClient ai.Client
	aiCfg    ai.Config
	logger   *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option настраивает генератор.
type Option func(*Generator)

// WithRand задаёт источник случайности.
func WithRand(rnd *rand.Rand) Option {
	return func(g *Generator) { g.rnd = rnd }
}

// WithAIClient включает генерацию через LLM.
func WithAIClient(client ai.Client, cfg ai.Config) Option {
	return func(g *Generator) {
		g.aiClient = client
		g.aiCfg = cfg
	}
}

// New создаёт генератор.
func New(catalog *Catalog, logger *zap.Logger, opts ...Option) *Generator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	g := &Generator{
		catalog: catalog,
		logger:  logger.Named("Generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Catalog возвращает используемый каталог.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// AIEnabled сообщает, подключён ли LLM.
func (g *Generator) AIEnabled() bool {
	return g.aiClient != nil
}

func (g *Generator) pick(values []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return values[g.rnd.Intn(len(values))]
}

// GenerateParameters выбирает по одному значению каждого поля из таблицы жанра.
// genre в ответе повторяет запрошенный жанр, даже если он неизвестен.
func (g *Generator) GenerateParameters(genre string) models.StoryParameters {
	if strings.TrimSpace(genre) == "" {
		genre = g.catalog.DefaultGenre
	}
	table, _ := g.catalog.Lookup(genre)
	return models.StoryParameters{
		Time:       g.pick(table.Times),
		Location:   g.pick(table.Locations),
		Characters: []string{g.pick(table.Characters)},
		Action:     g.pick(table.Actions),
		Mood:       g.pick(table.Moods),
		Genre:      genre,
	}
}

// GenerateBeginning собирает начало истории по шаблону длины.
// Заданные поля параметров используются как есть, пустые выбираются случайно.
func (g *Generator) GenerateBeginning(params models.StoryParameters, genre string, length models.StoryLength) string {
	table, _ := g.catalog.Lookup(genre)

	when := orPick(params.Time, func() string { return g.pick(table.Times) })
	where := orPick(params.Location, func() string { return g.pick(table.Locations) })
	who := orPick(firstCharacter(params.Characters), func() string { return g.pick(table.Characters) })
	what := orPick(params.Action, func() string { return g.pick(table.Actions) })
	mood := orPick(params.Mood, func() string { return g.pick(table.Moods) })

	opening := fmt.Sprintf("在%s，%s来到了%s。", when, who, where)

	switch length.Normalize() {
	case models.StoryLengthShort:
		return opening + fmt.Sprintf("他们决定%s。", what)
	case models.StoryLengthLong:
		return opening +
			fmt.Sprintf("这里%s。", fmt.Sprintf(g.pick(g.catalog.LocationDescriptions), mood)) +
			fmt.Sprintf("%s。", fmt.Sprintf(g.pick(g.catalog.CharacterBackgrounds), who)) +
			fmt.Sprintf("面对眼前的情况，他们决定%s。这将是一个充满%s的冒险，而他们还不知道前方等待着什么样的挑战和机遇。", what, mood)
	default:
		return opening +
			fmt.Sprintf("这里%s。", fmt.Sprintf(g.pick(g.catalog.LocationDescriptions), mood)) +
			fmt.Sprintf("面对眼前的情况，他们决定%s。这将是一个充满%s的冒险。", what, mood)
	}
}

// ContinuationSuggestions предлагает три варианта продолжения.
func (g *Generator) ContinuationSuggestions(params models.StoryParameters) []string {
	hero := orDefault(firstCharacter(params.Characters), "主角")
	return []string{
		fmt.Sprintf("突然，%s发现了一个意想不到的线索...", hero),
		fmt.Sprintf("就在这时，%s发生了奇怪的变化...", orDefault(params.Location, "这个地方")),
		fmt.Sprintf("%s回想起%s的一段记忆...", hero, orDefault(params.Time, "过去")),
	}
}

// ValidateParameters истинно, если задано хотя бы одно из: время, место,
// непустой персонаж, действие.
func ValidateParameters(params models.StoryParameters) bool {
	return strings.TrimSpace(params.Time) != "" ||
		strings.TrimSpace(params.Location) != "" ||
		firstCharacter(params.Characters) != "" ||
		strings.TrimSpace(params.Action) != ""
}

// HasStoryFields - есть ли у параметров время, место или непустой персонаж.
func HasStoryFields(params models.StoryParameters) bool {
	return strings.TrimSpace(params.Time) != "" ||
		strings.TrimSpace(params.Location) != "" ||
		firstCharacter(params.Characters) != ""
}

func firstCharacter(characters []string) string {
	for _, c := range characters {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

func orPick(value string, pick func() string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return pick()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
