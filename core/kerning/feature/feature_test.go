package feature

import (
	"strings"
	"testing"

	"github.com/npillmayer/kerntool/core/kerning"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var featureText = `languagesystem DFLT dflt;

feature salt { # the "feature kern {" comment
    sub a by a.alt;
} salt;

feature kern {
    # } kern; inside a comment
    pos A V -60;
    name "feature kern { \" } kern;";
} kern;

feature blah {
    sub b by b.alt; # kern;
} blah;
`

func TestSplitKernFeature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.io")
	defer teardown()
	//
	before, after := SplitKernFeature(featureText)
	assert.Equal(t, `languagesystem DFLT dflt;

feature salt { # the "feature kern {" comment
    sub a by a.alt;
} salt;

`, before)
	assert.Equal(t, `

feature blah {
    sub b by b.alt; # kern;
} blah;
`, after)
	assert.NotContains(t, before+after, "pos A V")
}

func TestSplitWithoutKernFeature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.io")
	defer teardown()
	//
	text := "feature liga {\n  sub f i by f_i; # feature kern {\n} liga;"
	before, after := SplitKernFeature(text)
	assert.Equal(t, text+"\n", before)
	assert.Equal(t, "", after)
	//
	before, after = SplitKernFeature("feature kernx { } kernx;")
	assert.Equal(t, "feature kernx { } kernx;\n", before)
	assert.Equal(t, "", after)
}

func TestSplitUnclosedKernFeature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.io")
	defer teardown()
	//
	before, after := SplitKernFeature("include(x.fea);\nfeature kern {\n  pos A V -10;\n")
	assert.Equal(t, "include(x.fea);\n", before)
	assert.Equal(t, "", after)
}

func TestSplitToleratesCommentsBetweenKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.io")
	defer teardown()
	//
	text := "a;\r\nfeature # first\r\nkern\r\n{ pos A V 1; }\r\n# second\r\nkern ;\r\nb;"
	before, after := SplitKernFeature(text)
	assert.Equal(t, "a;\n", before)
	assert.Equal(t, "\nb;", after)
}

func TestReplaceKernFeature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.io")
	defer teardown()
	//
	text := "feature salt {} salt;\nfeature kern { pos A V 1; } kern;\nfeature blah {} blah;\n"
	block := "feature kern { pos A V -5; } kern;"
	result := ReplaceKernFeature(text, block)
	assert.Equal(t, "feature salt {} salt;\nfeature kern { pos A V -5; } kern;\nfeature blah {} blah;\n", result)
	//
	result = ReplaceKernFeature("feature liga {} liga;", block)
	assert.True(t, strings.HasSuffix(result, "\n"+block))
}

func TestKernBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.io")
	defer teardown()
	//
	f, err := kerning.LoadSnapshot("../testdata/demo.yaml", kerning.DefaultPrefixes())
	require.NoError(t, err)
	block := KernBlock(f)
	assert.Equal(t, `feature kern {
    @public.kern1.A = [A Aacute];
    @public.kern1.O = [O D Q];
    @public.kern2.A = [A Aacute];
    @public.kern2.V = [V W];
    pos H O 5;
    pos V period -80;
    enum pos Aacute @public.kern2.V -40;
    pos @public.kern1.A @public.kern2.V -60;
    pos @public.kern1.O @public.kern2.A -20;
} kern;
`, block)
	before, after := SplitKernFeature(ReplaceKernFeature("languagesystem DFLT dflt;\n", block))
	assert.Equal(t, "languagesystem DFLT dflt;\n\n", before)
	assert.Equal(t, "\n", after)
}

func TestSplitRestoresMaskedText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.io")
	defer teardown()
	//
	head := "# 0\n# 1\nname \"a\" \"b\"; # \"c\"\ninclude(\"x.fea\");\n"
	tail := "\n\"}\" # {\n#\n"
	before, after := SplitKernFeature(head + "feature kern { pos A V 1; } kern;" + tail)
	assert.Equal(t, head, before)
	assert.Equal(t, tail, after)
}
