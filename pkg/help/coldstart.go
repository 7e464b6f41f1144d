package help

const ColdstartYAML = `# tag-extractor Quick Start

inputs:
  text: "File path, .html/.htm file (article text is extracted), http(s) URL, or - for stdin"
  stopwords: "One stop word per line; matched case-insensitively, not letter-stripped"

tag_rules:
  - "Lines are split on runs of whitespace"
  - "Every non-letter (a-z, A-Z) is removed, the rest is lowercased"
  - "Stop words are dropped, everything else is counted"
  - "Tokens with no letters are dropped unless --keep-empty is set"

output_formats:
  text: "word: count lines, most frequent first (default)"
  yaml: "Full run report"
  json: "Full run report"

commands:
  basic: |
    tag-extractor extract --text notes.txt --stopwords stop.txt

  save_tags: |
    tag-extractor extract --text notes.txt --stopwords stop.txt --output tags.txt

  several_sources: |
    tag-extractor extract -t a.txt -t page.html -t https://example.com --builtin-stopwords --top 20

  report: |
    tag-extractor extract --text notes.txt --stopwords stop.txt --report run.yaml --format yaml

  legacy_counting: |
    tag-extractor extract --text notes.txt --stopwords stop.txt --keep-empty

  history: |
    tag-extractor runs
    tag-extractor run 3
    tag-extractor tags 3 --limit 50

config_file: |
  # tag-extractor.yaml (or $TAG_EXTRACTOR_CONFIG)
  stopwords: stopwords.txt
  output_dir: results
  top: 25
  workers: 4
  cache:
    dir: .cache/tag-extractor
    max_age: 24h
`
