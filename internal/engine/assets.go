package engine

import "fmt"

// ImageList is the append-only image registry. Ids are assigned sequentially
// from 0 and stay stable once assigned; appending or overwriting an entry
// journals an asset change with the id and filename.
type ImageList struct {
	session *Session
	files   []string
}

// Images creates an image registry and appends the given filenames.
func (s *Session) Images(filenames ...string) *ImageList {
	l := &ImageList{session: s}
	for _, f := range filenames {
		l.Append(f)
	}
	return l
}

// Append registers a new image and returns its id.
func (l *ImageList) Append(filename string) int {
	id := len(l.files)
	l.files = append(l.files, filename)
	l.session.ledger.RecordImage(id, filename)
	return id
}

// Set overwrites an existing entry's filename.
func (l *ImageList) Set(id int, filename string) error {
	if id < 0 || id >= len(l.files) {
		return fmt.Errorf("image id %d out of range [0, %d)", id, len(l.files))
	}
	l.files[id] = filename
	l.session.ledger.RecordImage(id, filename)
	return nil
}

// Get returns the filename registered under an id.
func (l *ImageList) Get(id int) (string, bool) {
	if id < 0 || id >= len(l.files) {
		return "", false
	}
	return l.files[id], true
}

// Len returns the number of registered images.
func (l *ImageList) Len() int {
	return len(l.files)
}

// SoundList is the append-only registry for audio clips, mirroring ImageList.
type SoundList struct {
	session *Session
	files   []string
}

// Sounds creates a clip registry and appends the given filenames.
func (s *Session) Sounds(filenames ...string) *SoundList {
	l := &SoundList{session: s}
	for _, f := range filenames {
		l.Append(f)
	}
	return l
}

// Append registers a new clip and returns its id.
func (l *SoundList) Append(filename string) int {
	id := len(l.files)
	l.files = append(l.files, filename)
	l.session.ledger.RecordClip(id, filename)
	return id
}

// Set overwrites an existing entry's filename.
func (l *SoundList) Set(id int, filename string) error {
	if id < 0 || id >= len(l.files) {
		return fmt.Errorf("clip id %d out of range [0, %d)", id, len(l.files))
	}
	l.files[id] = filename
	l.session.ledger.RecordClip(id, filename)
	return nil
}

// Get returns the filename registered under an id.
func (l *SoundList) Get(id int) (string, bool) {
	if id < 0 || id >= len(l.files) {
		return "", false
	}
	return l.files[id], true
}

// Len returns the number of registered clips.
func (l *SoundList) Len() int {
	return len(l.files)
}
