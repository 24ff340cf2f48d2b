package inline

import "testing"

func TestMaterializeChoice(t *testing.T) {
	t.Run("sic_correction", func(t *testing.T) {
		w := Span{Kind: KindSic, Offset: 0, Length: 4, Attrs: Attrs{{Key: "correction", Value: "dice"}}}
		_, node, _ := materialize(w, []*Node{TextNode("dize")})
		if node.Tag != "choice" || len(node.Children) != 2 {
			t.Fatalf("expected choice with two children, got %+v", node)
		}
		sic, corr := node.Children[0], node.Children[1]
		if sic.Tag != "sic" || FlattenText(sic.Children) != "dize" {
			t.Fatalf("sic side wrong: %+v", sic)
		}
		if corr.Tag != "corr" || !corr.Literal || corr.Children[0].Text != "dice" {
			t.Fatalf("corr side must be the literal correction: %+v", corr)
		}
	})

	t.Run("abbrev_missing_expansion", func(t *testing.T) {
		w := Span{Kind: KindAbbrev, Offset: 0, Length: 1}
		_, node, _ := materialize(w, []*Node{TextNode("q")})
		expan := node.Children[1]
		if expan.Tag != "expan" || len(expan.Children) != 0 {
			t.Fatalf("missing expansion must leave expan empty, not invented: %+v", expan)
		}
	})

	t.Run("abbrev_hoists_edge_whitespace", func(t *testing.T) {
		w := Span{Kind: KindAbbrev, Offset: 0, Length: 5, Attrs: Attrs{{Key: "expansion", Value: "que"}}}
		lead, node, trail := materialize(w, []*Node{TextNode(" q ")})
		if lead != " " || trail != " " {
			t.Fatalf("edge whitespace not hoisted: lead=%q trail=%q", lead, trail)
		}
		if got := FlattenText(node.Children[0].Children); got != "q" {
			t.Fatalf("abbr content %q", got)
		}
	})
}

func TestMaterializeRegularised(t *testing.T) {
	t.Run("witness_flows_through_reg", func(t *testing.T) {
		w := Span{Kind: KindRegularised, Offset: 0, Length: 2, Attrs: Attrs{{Key: "original", Value: "vn"}}}
		_, node, _ := materialize(w, []*Node{TextNode("un")})
		orig, reg := node.Children[0], node.Children[1]
		if orig.Tag != "orig" || !orig.Literal || orig.Children[0].Text != "vn" {
			t.Fatalf("orig side must hold the literal original form: %+v", orig)
		}
		if reg.Tag != "reg" || reg.Literal || FlattenText(reg.Children) != "un" {
			t.Fatalf("reg side must carry the witness text: %+v", reg)
		}
		if got := FlattenText([]*Node{node}); got != "un" {
			t.Fatalf("choice must flatten to the witness text, got %q", got)
		}
	})

	t.Run("explicit_attribute_deduplicates_witness", func(t *testing.T) {
		w := Span{Kind: KindRegularised, Offset: 0, Length: 2, Attrs: Attrs{
			{Key: "original", Value: "vn"},
			{Key: "regularised", Value: "un"},
		}}
		_, node, _ := materialize(w, []*Node{TextNode("un")})
		reg := node.Children[1]
		if len(reg.Children) != 1 || reg.Children[0].Text != "un" {
			t.Fatalf("witness must not be emitted next to the explicit value: %+v", reg.Children)
		}
	})

	t.Run("explicit_attribute_keeps_nested_elements", func(t *testing.T) {
		hi := Element("hi").SetAttr("rend", "bold")
		hi.AppendText("un")
		w := Span{Kind: KindRegularised, Offset: 0, Length: 2, Attrs: Attrs{{Key: "regularised", Value: "un"}}}
		_, node, _ := materialize(w, []*Node{hi})
		reg := node.Children[1]
		if len(reg.Children) != 2 || reg.Children[0].Text != "un" || reg.Children[1].Tag != "hi" {
			t.Fatalf("explicit value must come first, nested elements after: %+v", reg.Children)
		}
	})
}

func TestMaterializePerson(t *testing.T) {
	w := Span{Kind: KindPerson, Offset: 0, Length: 6, Attrs: Attrs{
		{Key: "type", Value: "humano"},
		{Key: "wikiData", Value: "Q8605"},
		{Key: "firstname", Value: "Marco"},
		{Key: "continued", Value: "true"},
	}}
	_, node, _ := materialize(w, []*Node{TextNode("Marcus")})
	if node.Tag != "persName" {
		t.Fatalf("expected persName, got %s", node.Tag)
	}
	if node.Attrs.Value("ref") != "https://www.wikidata.org/wiki/Q8605" {
		t.Fatalf("wikiData id must become a reference URL: %+v", node.Attrs)
	}
	if node.Attrs.Value("type") != "humano" || node.Attrs.Value("firstname") != "Marco" {
		t.Fatalf("person attributes lost: %+v", node.Attrs)
	}
	if node.Attrs.Value("continued") != "true" {
		t.Fatalf("continued flag lost: %+v", node.Attrs)
	}

	plain := personNode(Attrs{{Key: "continued", Value: "false"}})
	if plain.Attrs.Has("continued") {
		t.Fatal("continued=false must not be emitted")
	}
}

func TestMaterializePlace(t *testing.T) {
	w := Span{Kind: KindPlace, Offset: 0, Length: 7, Attrs: Attrs{
		{Key: "country", Value: "España"},
		{Key: "settlement", Value: "Córdoba"},
	}}
	_, node, _ := materialize(w, []*Node{TextNode("Córdoba")})
	if node.Tag != "placeName" {
		t.Fatalf("expected placeName, got %s", node.Tag)
	}
	// witness text first, geographic children after it
	if len(node.Children) != 3 || node.Children[0].Text != "Córdoba" {
		t.Fatalf("place layout wrong: %+v", node.Children)
	}
	if node.Children[1].Tag != "country" || node.Children[1].Children[0].Text != "España" {
		t.Fatalf("country child wrong: %+v", node.Children[1])
	}
	if node.Children[2].Tag != "settlement" || node.Children[2].Children[0].Text != "Córdoba" {
		t.Fatalf("settlement child wrong: %+v", node.Children[2])
	}
}

func TestMaterializeRefAndUnclear(t *testing.T) {
	ref := Span{Kind: KindRef, Offset: 0, Length: 4, Attrs: Attrs{
		{Key: "type", Value: "biblical"},
		{Key: "target", Value: "#ps23"},
	}}
	_, node, _ := materialize(ref, []*Node{TextNode("Ps23")})
	if node.Tag != "ref" || node.Attrs.Value("target") != "#ps23" || node.Attrs.Value("type") != "biblical" {
		t.Fatalf("ref wrong: %+v", node)
	}

	un := Span{Kind: KindUnclear, Offset: 0, Length: 3, Attrs: Attrs{{Key: "reason", Value: "damage"}}}
	_, node, _ = materialize(un, []*Node{TextNode("xyz")})
	if node.Tag != "unclear" || node.Attrs.Value("reason") != "damage" {
		t.Fatalf("unclear wrong: %+v", node)
	}
}

func TestMaterializeFallback(t *testing.T) {
	w := Span{Kind: "marginalia", Offset: 0, Length: 4, Attrs: Attrs{{Key: "note", Value: "nb"}}}
	_, node, _ := materialize(w, []*Node{TextNode("nota")})
	if node.Tag != "seg" || node.Attrs.Value("type") != "marginalia" {
		t.Fatalf("fallback shape wrong: %+v", node)
	}
	if node.Attrs.Value("data-note") != "nb" {
		t.Fatalf("fallback must echo every attribute: %+v", node.Attrs)
	}
	if got := FlattenText(node.Children); got != "nota" {
		t.Fatalf("fallback content %q", got)
	}
}
