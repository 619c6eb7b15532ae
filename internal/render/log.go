package render

// DefaultMaxLines is the default number of lines retained in the output log.
const DefaultMaxLines = 10000

// Log is the output log: a fixed-size circular buffer of lines.
// When capacity is reached, new lines overwrite the oldest ones.
type Log struct {
	data  []Line
	head  int // Index of the oldest line
	count int // Number of lines in the log
	cap   int // Maximum capacity
}

// NewLog creates a Log with the given capacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultMaxLines
	}
	return &Log{
		data: make([]Line, capacity),
		cap:  capacity,
	}
}

// Push appends a line, evicting the oldest if at capacity.
func (l *Log) Push(line Line) {
	if l.count < l.cap {
		idx := (l.head + l.count) % l.cap
		l.data[idx] = line
		l.count++
		return
	}
	l.data[l.head] = line
	l.head = (l.head + 1) % l.cap
}

// Len returns the number of lines in the log.
func (l *Log) Len() int {
	return l.count
}

// Cap returns the maximum capacity of the log.
func (l *Log) Cap() int {
	return l.cap
}

// Get returns the line at index (0 = oldest) and whether it exists.
func (l *Log) Get(index int) (Line, bool) {
	if index < 0 || index >= l.count {
		return Line{}, false
	}
	return l.data[(l.head+index)%l.cap], true
}

// Last returns the newest line.
func (l *Log) Last() (Line, bool) {
	return l.Get(l.count - 1)
}

// Update applies fn to the line with the given ID. Lines are searched from
// the newest since updates target recent output. Returns false if the line
// has been evicted or cleared.
func (l *Log) Update(id ID, fn func(*Line)) bool {
	for i := l.count - 1; i >= 0; i-- {
		idx := (l.head + i) % l.cap
		if l.data[idx].ID == id {
			fn(&l.data[idx])
			return true
		}
	}
	return false
}

// Lines returns all lines ordered from oldest to newest.
func (l *Log) Lines() []Line {
	result := make([]Line, 0, l.count)
	l.Iterate(func(_ int, line Line) bool {
		result = append(result, line)
		return true
	})
	return result
}

// Clear removes all lines.
func (l *Log) Clear() {
	l.head = 0
	l.count = 0
	for i := range l.data {
		l.data[i] = Line{}
	}
}

// Iterate calls fn for each line from oldest to newest.
// If fn returns false, iteration stops early.
func (l *Log) Iterate(fn func(index int, line Line) bool) {
	for i := 0; i < l.count; i++ {
		if !fn(i, l.data[(l.head+i)%l.cap]) {
			return
		}
	}
}
