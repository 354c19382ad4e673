package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/venkatsvpr/cachekit"
	"github.com/venkatsvpr/cachekit/cachelist"
	"github.com/venkatsvpr/cachekit/lptable"
	"github.com/venkatsvpr/cachekit/threadedtree"
)

var (
	errUsage          = errors.New("usage")
	errUnknownCommand = errors.New("unknown command")
)

// errQuit ends a session without an error.
var errQuit = errors.New("quit")

// session holds one instance of every structure and runs commands against
// them.
type session struct {
	cfg     Config
	out     io.Writer
	errOut  io.Writer
	verbose bool

	index *lptable.Table[string]
	list  *cachelist.List[string]
	tree  *threadedtree.Tree[string]
	cache *cachekit.Cache[string]

	evictions int
}

func newSession(cfg Config, out, errOut io.Writer, verbose bool) (*session, error) {
	index, err := lptable.New[string](cfg.Capacity, cfg.LoadFactor)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		index:   index,
		list:    cachelist.New[string](),
		tree:    threadedtree.New[string](),
	}

	s.cache, err = cachekit.NewWithEvict(cfg.CacheSize, func(key, value string) {
		s.evictions++
		fmt.Fprintf(s.out, "evicted %s=%s\n", key, value)
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

type command struct {
	usage string
	short string
	nargs int
	exec  func(s *session, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"put":        {"put <key> <value>", "store a key in the index", 2, (*session).put},
		"get":        {"get <key>", "look up a key in the index", 1, (*session).get},
		"del":        {"del <key>", "remove a key from the index", 1, (*session).del},
		"len":        {"len", "number of keys in the index", 0, (*session).length},
		"keys":       {"keys", "index keys in slot order", 0, (*session).keys},
		"bulk":       {"bulk <count>", "insert random keys into the index", 1, (*session).bulk},
		"push":       {"push <value>", "append to the access list", 1, (*session).push},
		"touch":      {"touch <value>", "search the access list", 1, (*session).touch},
		"list":       {"list", "show the access list with counts", 0, (*session).showList},
		"erase":      {"erase <pos> [end]", "erase list position, or range [pos, end)", -1, (*session).erase},
		"tree-add":   {"tree-add <value>", "insert into the ordered tree", 1, (*session).treeAdd},
		"tree":       {"tree", "show the ordered tree", 0, (*session).showTree},
		"cache-put":  {"cache-put <key> <value>", "add to the evicting cache", 2, (*session).cachePut},
		"cache-get":  {"cache-get <key>", "read from the evicting cache", 1, (*session).cacheGet},
		"cache-keys": {"cache-keys", "cache keys, most used first", 0, (*session).cacheKeys},
		"info":       {"info", "sizes and settings", 0, (*session).info},
		"help":       {"help", "show this help", 0, (*session).help},
	}
}

// exec runs one command line. Blank lines and # comments are ignored.
func (s *session) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	if s.verbose {
		fmt.Fprintln(s.errOut, "+", line)
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "exit", "quit", "q":
		return errQuit
	}

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: %s (try help)", errUnknownCommand, name)
	}
	if cmd.nargs >= 0 && len(args) != cmd.nargs {
		return fmt.Errorf("%w: %s", errUsage, cmd.usage)
	}
	return cmd.exec(s, args)
}

func (s *session) put(args []string) error {
	if !s.index.Update(args[0], args[1]) {
		fmt.Fprintf(s.out, "rejected %s: load factor ceiling reached (%d/%d)\n",
			args[0], s.index.Len(), s.index.Cap())
		return nil
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}

func (s *session) get(args []string) error {
	v, ok := s.index.Find(args[0])
	if !ok {
		fmt.Fprintln(s.out, "(not found)")
		return nil
	}
	fmt.Fprintln(s.out, v)
	return nil
}

func (s *session) del(args []string) error {
	if s.index.Remove(args[0]) {
		fmt.Fprintln(s.out, "deleted")
	} else {
		fmt.Fprintln(s.out, "(not found)")
	}
	return nil
}

func (s *session) length([]string) error {
	fmt.Fprintln(s.out, s.index.Len())
	return nil
}

func (s *session) keys([]string) error {
	for _, k := range s.index.Keys() {
		fmt.Fprintln(s.out, k)
	}
	return nil
}

func (s *session) bulk(args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("%w: bulk <count>", errUsage)
	}
	added := 0
	for i := 0; i < n; i++ {
		if !s.index.Update(uuid.NewString(), strconv.Itoa(i)) {
			break
		}
		added++
	}
	fmt.Fprintf(s.out, "added %d of %d\n", added, n)
	return nil
}

func (s *session) push(args []string) error {
	s.list.Insert(args[0])
	return nil
}

func (s *session) touch(args []string) error {
	it := s.list.Search(args[0])
	if it.Equal(s.list.End()) {
		fmt.Fprintln(s.out, "(not found)")
		return nil
	}
	fmt.Fprintf(s.out, "%s %d\n", it.Value(), it.AccessCount())
	return nil
}

func (s *session) showList([]string) error {
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	pos := 0
	for it := s.list.CBegin(); !it.Equal(s.list.CEnd()); it = it.Next() {
		fmt.Fprintf(w, "%d\t%s\t%d\n", pos, it.Value(), it.AccessCount())
		pos++
	}
	return w.Flush()
}

// listAt returns the iterator at position pos; pos == Len() gives End.
func (s *session) listAt(arg string) (cachelist.Iterator[string], error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 0 || pos > s.list.Len() {
		return cachelist.Iterator[string]{}, fmt.Errorf("%w: position %q out of range", errUsage, arg)
	}
	it := s.list.Begin()
	for ; pos > 0; pos-- {
		it = it.Next()
	}
	return it, nil
}

func (s *session) erase(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: erase <pos> [end]", errUsage)
	}
	first, err := s.listAt(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if first.Equal(s.list.End()) {
			return fmt.Errorf("%w: cannot erase the end position", errUsage)
		}
		s.list.Erase(first)
		return nil
	}
	last, err := s.listAt(args[1])
	if err != nil {
		return err
	}
	a, _ := strconv.Atoi(args[0])
	b, _ := strconv.Atoi(args[1])
	if b < a {
		return fmt.Errorf("%w: end %d before start %d", errUsage, b, a)
	}
	s.list.EraseRange(first, last)
	return nil
}

func (s *session) treeAdd(args []string) error {
	if !s.tree.Insert(args[0]) {
		fmt.Fprintln(s.out, "(already present)")
	}
	return nil
}

func (s *session) showTree([]string) error {
	fmt.Fprintln(s.out, strings.Join(s.tree.Values(), " "))
	return nil
}

func (s *session) cachePut(args []string) error {
	s.cache.Add(args[0], args[1])
	return nil
}

func (s *session) cacheGet(args []string) error {
	v, ok := s.cache.Get(args[0])
	if !ok {
		fmt.Fprintln(s.out, "(not found)")
		return nil
	}
	fmt.Fprintln(s.out, v)
	return nil
}

func (s *session) cacheKeys([]string) error {
	for _, k := range s.cache.Keys() {
		n, _ := s.cache.AccessCount(k)
		fmt.Fprintf(s.out, "%s %d\n", k, n)
	}
	return nil
}

func (s *session) info([]string) error {
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "index\t%d/%d keys\tmax load factor %.2f\n", s.index.Len(), s.index.Cap(), s.index.MaxLoadFactor())
	fmt.Fprintf(w, "list\t%d entries\t\n", s.list.Len())
	fmt.Fprintf(w, "tree\t%d values\t\n", s.tree.Len())
	fmt.Fprintf(w, "cache\t%d/%d keys\t%d evictions\n", s.cache.Len(), s.cache.Cap(), s.evictions)
	return w.Flush()
}

var helpOrder = []string{
	"put", "get", "del", "len", "keys", "bulk",
	"push", "touch", "list", "erase",
	"tree-add", "tree",
	"cache-put", "cache-get", "cache-keys",
	"info", "help",
}

func (s *session) help([]string) error {
	fmt.Fprintln(s.out, "Commands:")
	for _, name := range helpOrder {
		c := commands[name]
		fmt.Fprintf(s.out, "  %-24s %s\n", c.usage, c.short)
	}
	fmt.Fprintf(s.out, "  %-24s %s\n", "exit / quit / q", "leave the shell")
	return nil
}
