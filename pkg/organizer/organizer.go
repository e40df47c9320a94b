// Package organizer — диспетчер операций сервиса.
//
// Принимает разобранный запрос (дерево + селектор операции + ввод
// пользователя) и собирает ответ, комбинируя компоненты: tree,
// category, rename, search и AI коллаборатора. Для каждой AI-операции
// есть детерминированный fallback; отказ коллаборатора никогда не
// фатален и раскрывается клиенту через aiStatus/note.
//
// Organizer stateless: вся работа request-scoped, конкурентные запросы
// независимы.
package organizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/beatercode/organAizer-server/pkg/config"
	"github.com/beatercode/organAizer-server/pkg/llm"
	"github.com/beatercode/organAizer-server/pkg/tree"
	"github.com/beatercode/organAizer-server/pkg/utils"
)

// Поддерживаемые операции.
const (
	OptionCategorize = "categorize"
	OptionRename     = "rename"
	OptionSuggest    = "suggest"
	OptionSearch     = "search"
)

// Статусы AI в ответе. Пустой статус означает что ответ построен
// моделью без деградации.
const (
	AIStatusDisabled = "disabled"
	AIStatusFallback = "fallback"
)

// Ошибки клиентского ввода. HTTP слой переводит их в 400.
var (
	ErrMissingFolderData = errors.New("folderData is required")
	ErrUnknownOption     = errors.New("unknown option")
	ErrMissingQuery      = errors.New("userInput with a search query is required")
)

// Request — разобранное тело запроса операции.
type Request struct {
	FolderData *tree.Node `json:"folderData"`
	Option     string     `json:"option"`
	UserInput  string     `json:"userInput"`
}

// Organizer выполняет операции над деревом папок.
type Organizer struct {
	cfg      *config.AppConfig
	provider llm.Provider // nil когда AI выключен
}

// New создаёт Organizer. provider может быть nil — тогда все операции
// работают на детерминированных fallback-путях.
func New(cfg *config.AppConfig, provider llm.Provider) *Organizer {
	return &Organizer{cfg: cfg, provider: provider}
}

// aiEnabled сообщает доступен ли AI коллаборатор.
func (o *Organizer) aiEnabled() bool {
	return o.provider != nil && o.cfg.AI.Enabled()
}

// Handle валидирует запрос и диспетчеризует операцию.
//
// Возвращаемое значение сериализуется в JSON как есть; ошибки
// клиентского ввода (Err*) не сопровождаются частичной обработкой.
func (o *Organizer) Handle(ctx context.Context, req Request) (any, error) {
	if req.FolderData == nil {
		return nil, ErrMissingFolderData
	}

	switch req.Option {
	case OptionCategorize:
		return o.Categorize(ctx, req.FolderData), nil
	case OptionRename:
		return o.Rename(ctx, req.FolderData, req.UserInput), nil
	case OptionSuggest:
		return o.Suggest(ctx, req.FolderData), nil
	case OptionSearch:
		if req.UserInput == "" {
			return nil, ErrMissingQuery
		}
		return o.Search(ctx, req.FolderData, req.UserInput), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, req.Option)
	}
}

// chat — один вызов коллаборатора с конфигурационной температурой.
// Ошибка логируется и возвращается вызывающему для перехода на fallback.
func (o *Organizer) chat(ctx context.Context, messages []llm.Message) (string, error) {
	text, err := o.provider.Chat(ctx, llm.ChatRequest{
		Temperature: o.cfg.AI.Temperature,
		MaxTokens:   o.cfg.AI.MaxTokens,
		Messages:    messages,
	})
	if err != nil {
		utils.Warn("AI collaborator call failed, falling back", "error", err)
		return "", err
	}
	return text, nil
}
