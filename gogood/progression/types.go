package progression

type Result struct {
	Level      int
	ExpInLevel int64
}
