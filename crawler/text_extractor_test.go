package crawler

import (
	"context"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(textExtractionTestSuite))

type textExtractionTestSuite struct{}

func (s *textExtractionTestSuite) TestTitleAndTextExtraction(c *check.C) {
	content := `
<html>
<head>
	<title>  Physics   Department </title>
</head>
<body>
	<h1>Welcome</h1>
	<p>Course   catalog and <b>research</b> groups.</p>
	<script>console.log("ignored");</script>
</body>
</html>
`
	payload := s.extractText(c, content)
	c.Assert(payload.Title, check.Equals, "Physics Department")
	c.Assert(payload.TextContent, check.Equals, "Welcome Course catalog and research groups.")
}

func (s *textExtractionTestSuite) TestMissingTitle(c *check.C) {
	payload := s.extractText(c, `<html><body>just text</body></html>`)
	c.Assert(payload.Title, check.Equals, "")
	c.Assert(payload.TextContent, check.Equals, "just text")
}

func (s *textExtractionTestSuite) TestEntitiesUnescaped(c *check.C) {
	payload := s.extractText(c, `<html><body>Research &amp; Teaching</body></html>`)
	c.Assert(payload.TextContent, check.Equals, "Research & Teaching")
}

func (s *textExtractionTestSuite) TestMalformedHTMLDegradesToText(c *check.C) {
	payload := s.extractText(c, `<html><body><p>unclosed paragraph`)
	c.Assert(payload.TextContent, check.Equals, "unclosed paragraph")
}

func (s *textExtractionTestSuite) extractText(c *check.C, content string) *crawlerPayload {
	payload := new(crawlerPayload)
	_, err := payload.RawContent.WriteString(content)
	c.Assert(err, check.IsNil)

	output, err := newTextExtractor().Process(context.TODO(), payload)
	c.Assert(err, check.IsNil)
	c.Assert(output, check.FitsTypeOf, payload)

	return output.(*crawlerPayload)
}
