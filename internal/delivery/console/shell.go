// Package console drives the recipe book from an interactive text menu.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/recipebook/backend/internal/domain"
	"github.com/recipebook/backend/internal/logger"
	"github.com/recipebook/backend/internal/usecase"
)

const (
	fetchFailure    = "Failed to get the webpage."
	welcomeMessage  = "Welcome to Ally's online Recipe Book!"
	farewellMessage = "See you next time!"
	invalidChoice   = "Invalid choice. Please try again."
	matchingHeader  = "Matching Recipes:"
	noSearchMatch   = "No recipes found matching the search query."
	noFilterMatch   = "No recipes match your criteria."

	promptChoice = "Enter your choice: "
	promptSearch = "Enter what you want to search: "
	promptSave   = "Enter the name of the recipe: "
	promptDiet   = "Enter your dietary preference (leave blank for any): "
	promptPrice  = "Enter your preferred price range (low, medium, high): "
	promptOrigin = "Enter the country of origin (leave blank for any): "
)

var menuLines = []string{
	"\n\tMenu:",
	"1. Search for a recipe",
	"2. Save a recipe to your recipe book",
	"3. Filter recipe preferences",
	"4. Exit",
}

// RecipeService is what the shell needs from the recipe use case
type RecipeService interface {
	Search(query string) []domain.Recipe
	Filter(criteria usecase.FilterCriteria) *usecase.NameSet
	Save(name string) (string, error)
}

type state int

const (
	stateMenu state = iota
	stateSearch
	stateSave
	stateFilter
	stateExit
)

// errInputClosed ends the session when the input runs out mid-prompt
var errInputClosed = errors.New("input closed")

// Shell is a single interactive session over a reader and a writer
type Shell struct {
	recipes RecipeService
	in      *bufio.Reader
	out     io.Writer
	logger  *zap.Logger
	loadErr error
}

// NewShell creates a shell reading commands from in and writing to out
func NewShell(recipes RecipeService, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	return &Shell{
		recipes: recipes,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger.OrNop(log),
	}
}

// SetLoadError records that the recipe listing could not be fetched.
// Run then tells the user before the welcome line.
func (s *Shell) SetLoadError(err error) {
	s.loadErr = err
}

// Run loops over the menu until the user exits or the input ends.
// End of input is a normal exit.
func (s *Shell) Run() error {
	if s.loadErr != nil {
		s.println(fetchFailure)
	}
	s.println(welcomeMessage)

	st := stateMenu
	for st != stateExit {
		var err error
		st, err = s.step(st)
		if errors.Is(err, errInputClosed) {
			s.logger.Debug("Console input closed")
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) step(st state) (state, error) {
	switch st {
	case stateMenu:
		return s.menu()
	case stateSearch:
		return stateMenu, s.search()
	case stateSave:
		return stateMenu, s.save()
	case stateFilter:
		return stateMenu, s.filter()
	default:
		return stateExit, nil
	}
}

func (s *Shell) menu() (state, error) {
	for _, line := range menuLines {
		s.println(line)
	}
	choice, err := s.prompt(promptChoice)
	if err != nil {
		return stateExit, err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return stateSearch, nil
	case "2":
		return stateSave, nil
	case "3":
		return stateFilter, nil
	case "4":
		s.println(farewellMessage)
		return stateExit, nil
	default:
		s.println(invalidChoice)
		return stateMenu, nil
	}
}

func (s *Shell) search() error {
	query, err := s.prompt(promptSearch)
	if err != nil {
		return err
	}

	results := s.recipes.Search(query)
	s.println(matchingHeader)
	for _, r := range results {
		s.println(r.FormatSummary())
		s.println("")
	}
	if len(results) == 0 {
		s.println(noSearchMatch)
	}
	return nil
}

func (s *Shell) save() error {
	name, err := s.prompt(promptSave)
	if err != nil {
		return err
	}

	msg, err := s.recipes.Save(name)
	if err != nil {
		s.println("Please enter a recipe name.")
		return nil
	}
	s.println(msg)
	return nil
}

func (s *Shell) filter() error {
	var criteria usecase.FilterCriteria
	var err error
	if criteria.DietaryPreference, err = s.prompt(promptDiet); err != nil {
		return err
	}
	if criteria.PriceRange, err = s.prompt(promptPrice); err != nil {
		return err
	}
	if criteria.Origin, err = s.prompt(promptOrigin); err != nil {
		return err
	}

	names := s.recipes.Filter(criteria)
	if names.Len() == 0 {
		s.println(noFilterMatch)
		return nil
	}
	s.println(matchingHeader)
	for _, name := range names.Names() {
		s.println(name)
	}
	return nil
}

// prompt writes text and reads one line of any length, without its line ending.
// A final line without a newline still counts.
func (s *Shell) prompt(text string) (string, error) {
	fmt.Fprint(s.out, text)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", errInputClosed
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}
