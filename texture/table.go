package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
)

var (
	ErrEmptyDirectory = errors.New("texture directory is empty")
	ErrBadTextureName = errors.New("texture file name is not an integer id")
)

const fallbackTextureDim = 64

// Table indexes textures by the integer id taken from their file name.
type Table struct {
	textures map[int]*Texture
	ids      []int
}

func NewTable(textures ...*Texture) *Table {
	t := &Table{textures: make(map[int]*Texture, len(textures))}
	for _, tex := range textures {
		t.Add(tex)
	}
	return t
}

// Add stores a texture, replacing any texture with the same id.
func (t *Table) Add(tex *Texture) {
	if _, ok := t.textures[tex.ID]; !ok {
		t.ids = append(t.ids, tex.ID)
		sort.Ints(t.ids)
	}
	t.textures[tex.ID] = tex
}

// Get returns the texture for id, or nil when there is none.
func (t *Table) Get(id int) *Texture {
	if t == nil {
		return nil
	}
	return t.textures[id]
}

func (t *Table) Has(id int) bool {
	return t.Get(id) != nil
}

// IDs returns the texture ids in ascending order.
func (t *Table) IDs() []int {
	if t == nil {
		return nil
	}
	return append([]int(nil), t.ids...)
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

// LoadDir loads every "<id>.<ext>" file of dir in ascending id order. A file that
// does not decode is replaced with a fallback texture and a warning is logged.
func LoadDir(fsys fs.FS, dir string, log logrus.FieldLogger) (*Table, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read texture directory: %w", err)
	}

	type file struct {
		id   int
		name string
	}
	var files []file
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		id, err := strconv.Atoi(strings.TrimSuffix(name, path.Ext(name)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, ErrBadTextureName)
		}
		files = append(files, file{id: id, name: name})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrEmptyDirectory)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].id < files[j].id })

	table := NewTable()
	for _, f := range files {
		p := path.Join(dir, f.name)
		tex, err := decodeFile(fsys, p, f.id)
		if err != nil {
			log.WithError(err).WithFields(logrus.Fields{"id": f.id, "path": p}).Warn("texture replaced with fallback")
			tex = NewFallback(f.id, fallbackTextureDim)
			tex.Path = p
		} else {
			log.WithFields(logrus.Fields{
				"id":   f.id,
				"path": p,
				"size": fmt.Sprintf("%dx%d", tex.Width(), tex.Height()),
			}).Debug("texture loaded")
		}
		table.Add(tex)
	}
	return table, nil
}

func decodeFile(fsys fs.FS, p string, id int) (*Texture, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy())
	}

	tex := FromImage(id, img)
	tex.Path = p
	return tex, nil
}
