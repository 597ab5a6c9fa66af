package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Run Rudolph Run", "run rudolph run"},
		{"Last Christmas (Remastered) ft. George Michael", "last christmas"},
		{"Feliz Navidad feat. Someone Else", "feliz navidad"},
		{"Santa Baby FEAT Eartha", "santa baby"},
		{"Stand by Me", "stand"},
		{"Jingle Bell Rock (Live) [2009]", "jingle bell rock"},
		{"03 - Silent Night", "silent night"},
		{"07.", ""},
		{". Intro", "intro"},
		{"Song_Title--Remix:Edit", "song title remix edit"},
		{"  Multiple   spaces  ", "multiple spaces"},
		{"Cafe\u0301 Noel", "caf\u00e9 noel"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	in := "01 - White Christmas (1947 Version) ft. Ken Darby Singers"
	first := Normalize(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Normalize(in))
	}
}

func TestClassifier(t *testing.T) {
	tests := []struct {
		text       string
		songOpener bool
		artist     bool
		isSong     bool
	}{
		{"The Christmas Song", true, false, true},
		{"the ronettes", true, true, false},
		{"BING CROSBY & Friends", false, true, false},
		{"Jingle Bells", true, false, true},
		{"Ice Ice Baby", false, false, false},
		{"I'll Be Home", true, false, true},
		{"Chuck Berry", false, true, false},
		{"", false, false, false},
		{"Santana", false, true, false},
		{"Carole King", false, true, false},
		{"Babyface", false, true, false},
		{"Youngblood", false, false, false},
		{"Snowy White", false, false, false},
		{"Snow Patrol", true, true, false},
		{"You're a Mean One", true, false, true},
		{"Baby, It's Cold Outside", true, false, true},
		{"Rockin' Robin", true, false, true},
		{"Christmastime Is Here", true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.songOpener, LooksLikeSongOpener(tt.text), "LooksLikeSongOpener")
			assert.Equal(t, tt.artist, LooksLikeNonSongOpener(tt.text), "LooksLikeNonSongOpener")
			assert.Equal(t, tt.isSong, IsSongOpener(tt.text), "IsSongOpener")
		})
	}
}

func TestExtractPathContext(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{"two segments innermost first", "/music/A/Chuck Berry/Christmas/x.mp3", []string{"Christmas", "Chuck Berry"}},
		{"windows separators", `C:\Music\Brenda Lee\x.mp3`, []string{"Brenda Lee", "Music"}},
		{"index folder skipped", "/music/B/x.mp3", []string{"music"}},
		{"relative single dir", "Wham/x.mp3", []string{"Wham"}},
		{"bare file", "x.mp3", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPathContext(tt.path).Keywords)
		})
	}
}

func TestPathContext_Overlaps(t *testing.T) {
	ctx := PathContext{Keywords: []string{"Christmas", "Chuck Berry"}}

	assert.True(t, ctx.Overlaps("chuck berry"))
	assert.True(t, ctx.Overlaps("Chuck"))
	assert.True(t, ctx.Overlaps("Chuck Berry & Friends"))
	assert.False(t, ctx.Overlaps("Run Rudolph Run"))
	assert.False(t, ctx.Overlaps(""))
}

func TestResolve_Examples(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"01 - Run Rudolph Run - Chuck Berry.mp3", "run rudolph run"},
		{"(02) Run Rudolph Run - Chuck Berry.mp3", "run rudolph run"},
		{"21 - Bryan Adams - Run Rudolph Run.mp3", "run rudolph run"},
		{"Santana - Smooth.mp3", "smooth"},
		{"Snow Patrol - Chasing Cars.mp3", "chasing cars"},
		{"Carole King - Home Again.mp3", "home again"},
		{"Young the Giant - Cough Syrup.mp3", "cough syrup"},
		{"Babyface - When Can I See You.mp3", "when can i see you"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path, nil))
			assert.Equal(t, tt.want, Resolve(tt.path, KnownTitles{}))
		})
	}
}

func TestResolveDetailed(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		known  KnownTitles
		want   string
		method Method
	}{
		{
			name:   "single part with track number",
			path:   "/music/05 Jingle Bells.mp3",
			want:   "jingle bells",
			method: MethodSinglePart,
		},
		{
			name:   "digits only",
			path:   "/music/07.mp3",
			want:   "",
			method: MethodSinglePart,
		},
		{
			name:   "artist dropped by path context",
			path:   "/music/Chuck Berry/Christmas/01 - Run Rudolph Run - Chuck Berry.mp3",
			want:   "run rudolph run",
			method: MethodSingleCandidate,
		},
		{
			name:   "windows path context",
			path:   `C:\Music\Brenda Lee\Rockin Around The Christmas Tree - Brenda Lee.mp3`,
			want:   "rockin around the christmas tree",
			method: MethodSingleCandidate,
		},
		{
			name:   "disc reference dropped",
			path:   "Bing Crosby - Disc 2 - White Christmas.mp3",
			want:   "white christmas",
			method: MethodPairwise,
		},
		{
			name:   "disc and track prefix",
			path:   "CD1 - 03 - Silent Night - Bing Crosby.flac",
			want:   "silent night",
			method: MethodPairwise,
		},
		{
			name:   "tournament",
			path:   "Frank Sinatra - Live in Paris - Have Yourself a Merry Little Christmas.mp3",
			want:   "have yourself a merry little christmas",
			method: MethodTournament,
		},
		{
			name:   "everything filtered falls back to last part",
			path:   "Chuck Berry/Chuck Berry - 7.mp3",
			want:   "7",
			method: MethodFallbackLast,
		},
		{
			name:   "known title claims its part",
			path:   "Band Aid - Do They Know It's Christmas.mp3",
			known:  KnownTitles{"band aid": 2},
			want:   "band aid",
			method: MethodKnownTitle,
		},
		{
			name:   "largest known group wins",
			path:   "Alpha Song - Beta Song.mp3",
			known:  KnownTitles{"alpha song": 1, "beta song": 4},
			want:   "beta song",
			method: MethodKnownTitle,
		},
		{
			name:   "known tie goes to first part",
			path:   "Alpha Song - Beta Song.mp3",
			known:  KnownTitles{"alpha song": 2, "beta song": 2},
			want:   "alpha song",
			method: MethodKnownTitle,
		},
		{
			name:   "unknown titles fall through to heuristics",
			path:   "Alpha Song - Beta Song.mp3",
			known:  KnownTitles{"gamma": 9},
			want:   "alpha song",
			method: MethodPairwise,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolveDetailed(tt.path, tt.known)
			assert.Equal(t, tt.want, res.Title)
			assert.Equal(t, tt.method, res.Method, "method %s", res.Method)
		})
	}
}

func TestChooseWinnerFromTwoParts(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"left song opener", "The First Noel", "Some Band", "The First Noel"},
		{"right song opener", "Some Band", "Jingle Bells", "Jingle Bells"},
		{"left longer", "Run Rudolph Run", "Chuck Berry", "Run Rudolph Run"},
		{"right longer", "Bryan Adams", "Run Rudolph Run", "Run Rudolph Run"},
		{"longer left is an artist", "Frank Sinatra", "Live Paris", "Live Paris"},
		{"equal length left artist", "Frank Sinatra", "Live in Paris", "Live in Paris"},
		{"equal length right artist", "Live in Paris", "Frank Sinatra", "Live in Paris"},
		{"default right", "aaaa", "bbbb", "bbbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseWinnerFromTwoParts(tt.a, tt.b))
		})
	}
}

func TestTournament_Byes(t *testing.T) {
	assert.Equal(t, "ee", tournament([]string{"aa", "bb", "cc", "dd", "ee"}))
	assert.Equal(t, "the cc", tournament([]string{"aa", "bb", "the cc", "dd", "ee"}))

	in := []string{"aa", "bb", "cc"}
	tournament(in)
	assert.Equal(t, []string{"aa", "bb", "cc"}, in, "input must not be mutated")
}
